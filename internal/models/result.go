package models

// CheckResult is one location's reading from a single check run. Raw
// holds the unmodified API response body for the optional debug dump.
type CheckResult struct {
	Location Location
	KP       float64
	Raw      []byte
}
