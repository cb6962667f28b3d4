package models

import "fmt"

// Location is a monitored place. Locations are unique by coordinates and
// keep their configured order for display.
type Location struct {
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Name returns the "City, Country" display form.
func (l Location) Name() string {
	return fmt.Sprintf("%s, %s", l.City, l.Country)
}

// Coordinates returns the "lat, lon" display form with four decimals.
func (l Location) Coordinates() string {
	return fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude)
}

// SamePlace reports whether two locations share coordinates.
func (l Location) SamePlace(other Location) bool {
	return l.Latitude == other.Latitude && l.Longitude == other.Longitude
}
