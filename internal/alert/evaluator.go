package alert

import (
	"github.com/auroraeye/internal/models"
)

// Visibility is the band a KP reading falls into, independent of the
// configured threshold. Used for the per-location status line.
type Visibility string

const (
	VisibilityHigh     Visibility = "HIGH"
	VisibilityModerate Visibility = "MODERATE"
	VisibilityLow      Visibility = "LOW"
)

// ShouldNotify maps a KP reading and the configured threshold to a
// notify decision: HIGH requires KP >= 5, MODERATE KP >= 3, ALL any
// activity (KP > 0).
func ShouldNotify(kp float64, threshold models.Threshold) bool {
	switch threshold {
	case models.ThresholdHigh:
		return kp >= 5
	case models.ThresholdModerate:
		return kp >= 3
	case models.ThresholdAll:
		return kp > 0
	default:
		return false
	}
}

// Describe returns the human description of a threshold's rule.
func Describe(threshold models.Threshold) string {
	switch threshold {
	case models.ThresholdModerate:
		return "KP >= 3.0"
	case models.ThresholdAll:
		return "KP > 0"
	default:
		return "KP >= 5.0"
	}
}

// Band classifies a KP reading for display.
func Band(kp float64) Visibility {
	switch {
	case kp >= 5:
		return VisibilityHigh
	case kp >= 3:
		return VisibilityModerate
	default:
		return VisibilityLow
	}
}
