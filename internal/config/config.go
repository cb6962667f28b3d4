package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/auroraeye/internal/models"
)

// DefaultFile is the config file name, resolved against the working
// directory unless AURORAEYE_CONFIG points elsewhere.
const DefaultFile = "config.json"

var (
	// ErrNotFound means no config file exists yet; callers route the
	// user to `auroraeye configure`.
	ErrNotFound = errors.New("configuration file not found")

	// ErrCorrupt means the file exists but is not valid JSON.
	ErrCorrupt = errors.New("configuration file is corrupted")

	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Config is the persisted, non-secret part of the tool's state.
type Config struct {
	Locations []models.Location `json:"locations"`
	Emails    []string          `json:"emails"`
	Threshold models.Threshold  `json:"notification_threshold"`
}

// ValidationError carries the individual problems found in a config so
// they can be listed for the user.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

// fileConfig is the on-disk shape, including the legacy single-value
// fields from configs written before multi-location support.
type fileConfig struct {
	Locations []models.Location `json:"locations,omitempty"`
	Emails    []string          `json:"emails,omitempty"`
	Threshold string            `json:"notification_threshold,omitempty"`

	// Legacy fields, migrated on load and dropped on the next save.
	City      string   `json:"city,omitempty"`
	Country   string   `json:"country,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Email     string   `json:"email,omitempty"`
}

// Store reads and writes the config file.
type Store struct {
	path string
}

// NewStore creates a store for the given path; empty means DefaultPath.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath resolves the config file location.
func DefaultPath() string {
	if p := os.Getenv("AURORAEYE_CONFIG"); p != "" {
		return p
	}
	return DefaultFile
}

// Path returns the file the store operates on.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the config file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load reads, migrates, and validates the config.
func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	cfg := migrate(&fc)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as pretty-printed JSON, always in the current
// (list) shape. Secrets never go through here.
func (s *Store) Save(cfg *Config) error {
	if cfg.Threshold == "" {
		cfg.Threshold = models.DefaultThreshold
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// migrate lifts legacy single-value fields into list form. No data is
// lost: a top-level city/country/lat/lng becomes the sole location and
// a single email string becomes a one-element recipient list.
func migrate(fc *fileConfig) *Config {
	cfg := &Config{
		Locations: fc.Locations,
		Emails:    fc.Emails,
		Threshold: models.Threshold(fc.Threshold),
	}

	if len(cfg.Locations) == 0 && fc.City != "" {
		loc := models.Location{City: fc.City, Country: fc.Country}
		if fc.Latitude != nil {
			loc.Latitude = *fc.Latitude
		}
		if fc.Longitude != nil {
			loc.Longitude = *fc.Longitude
		}
		cfg.Locations = []models.Location{loc}
	}

	if len(cfg.Emails) == 0 && fc.Email != "" {
		cfg.Emails = []string{fc.Email}
	}

	if cfg.Threshold == "" {
		cfg.Threshold = models.DefaultThreshold
	}

	return cfg
}

// Validate checks structure and contents, collecting every problem.
func Validate(cfg *Config) error {
	var problems []string

	if len(cfg.Locations) == 0 {
		problems = append(problems, "at least one location must be configured")
	}
	for i, loc := range cfg.Locations {
		if loc.City == "" {
			problems = append(problems, fmt.Sprintf("location %d is missing a city", i+1))
		}
		if loc.Latitude < -90 || loc.Latitude > 90 {
			problems = append(problems, fmt.Sprintf("location %d latitude must be between -90 and 90", i+1))
		}
		if loc.Longitude < -180 || loc.Longitude > 180 {
			problems = append(problems, fmt.Sprintf("location %d longitude must be between -180 and 180", i+1))
		}
	}

	if len(cfg.Emails) == 0 {
		problems = append(problems, "at least one email recipient must be configured")
	}
	for _, email := range cfg.Emails {
		if !ValidEmail(email) {
			problems = append(problems, fmt.Sprintf("invalid email format: %s", email))
		}
	}

	if !cfg.Threshold.Valid() {
		problems = append(problems, "notification_threshold must be one of: HIGH, MODERATE, ALL")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidEmail checks an address against the basic recipient pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
