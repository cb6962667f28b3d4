package models

import (
	"fmt"
	"strings"
)

// Threshold is the user-chosen notification sensitivity. The set is
// closed and ordered by strictness: HIGH > MODERATE > ALL.
type Threshold string

const (
	ThresholdHigh     Threshold = "HIGH"
	ThresholdModerate Threshold = "MODERATE"
	ThresholdAll      Threshold = "ALL"
)

// DefaultThreshold is applied when a config predates the threshold field.
const DefaultThreshold = ThresholdHigh

// ParseThreshold validates a threshold name, case-insensitively.
func ParseThreshold(s string) (Threshold, error) {
	switch Threshold(strings.ToUpper(strings.TrimSpace(s))) {
	case ThresholdHigh:
		return ThresholdHigh, nil
	case ThresholdModerate:
		return ThresholdModerate, nil
	case ThresholdAll:
		return ThresholdAll, nil
	default:
		return "", fmt.Errorf("invalid notification threshold %q: must be one of HIGH, MODERATE, ALL", s)
	}
}

// Valid reports whether t is a member of the closed threshold set.
func (t Threshold) Valid() bool {
	_, err := ParseThreshold(string(t))
	return err == nil
}
