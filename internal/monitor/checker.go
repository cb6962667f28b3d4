// Package monitor runs a check pass over the configured locations:
// fetch the KP index for each, classify it, and collect the readings
// that qualify for a notification.
package monitor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/auroraeye/internal/alert"
	"github.com/auroraeye/internal/models"
	"go.uber.org/zap"
)

// Fetcher is the aurora API surface the checker needs.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (kp float64, raw []byte, err error)
}

// Dumper receives raw API responses when --save-output is in effect.
type Dumper interface {
	Append(lat, lon float64, raw []byte) error
}

// Checker polls each location sequentially. A failure on one location
// is reported and the remaining locations are still checked; nothing is
// retried.
type Checker struct {
	fetcher Fetcher
	logger  *zap.Logger
	out     io.Writer
	dump    Dumper
}

// NewChecker creates a checker writing status lines to stdout.
func NewChecker(fetcher Fetcher, logger *zap.Logger) *Checker {
	return &Checker{
		fetcher: fetcher,
		logger:  logger,
		out:     os.Stdout,
	}
}

// SetOutput redirects the per-location status lines.
func (c *Checker) SetOutput(w io.Writer) {
	c.out = w
}

// SetDump enables saving raw responses.
func (c *Checker) SetDump(d Dumper) {
	c.dump = d
}

// Run checks every location against the threshold and returns the
// qualifying readings in configured order.
func (c *Checker) Run(ctx context.Context, locations []models.Location, threshold models.Threshold) []models.CheckResult {
	var qualifying []models.CheckResult

	for _, loc := range locations {
		kp, raw, err := c.fetcher.Fetch(ctx, loc.Latitude, loc.Longitude)

		if c.dump != nil && len(raw) > 0 {
			if derr := c.dump.Append(loc.Latitude, loc.Longitude, raw); derr != nil {
				c.logger.Warn("failed to save API response", zap.Error(derr))
				fmt.Fprintf(c.out, "Warning: could not save API output: %v\n", derr)
			}
		}

		if err != nil {
			c.logger.Warn("check failed",
				zap.String("location", loc.Name()),
				zap.Error(err))
			fmt.Fprintf(c.out, "⚠ %s: %v\n", loc.Name(), err)
			continue
		}

		switch alert.Band(kp) {
		case alert.VisibilityHigh:
			fmt.Fprintf(c.out, "✓ %s: KP %g - HIGH visibility!\n", loc.Name(), kp)
		case alert.VisibilityModerate:
			fmt.Fprintf(c.out, "○ %s: KP %g - MODERATE visibility\n", loc.Name(), kp)
		default:
			fmt.Fprintf(c.out, "  %s: KP %g - LOW visibility\n", loc.Name(), kp)
		}

		if alert.ShouldNotify(kp, threshold) {
			qualifying = append(qualifying, models.CheckResult{Location: loc, KP: kp, Raw: raw})
		}
	}

	return qualifying
}
