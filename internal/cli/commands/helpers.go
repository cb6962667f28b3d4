package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/auroraeye/internal/config"
	"github.com/auroraeye/internal/logger"
	"go.uber.org/zap"
)

// setup loads the environment-backed settings and builds the logger.
func setup() (*config.Settings, *zap.Logger, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(settings.LogLevel, settings.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	return settings, log, nil
}

// loadConfig reads the config file, translating store errors into
// user-facing messages.
func loadConfig(store *config.Store) (*config.Config, error) {
	cfg, err := store.Load()
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("configuration file not found. Run 'auroraeye configure' to create one")
	}
	if errors.Is(err, config.ErrCorrupt) {
		return nil, fmt.Errorf("configuration file is corrupted. Run 'auroraeye configure' to recreate it")
	}

	var verr *config.ValidationError
	if errors.As(err, &verr) {
		fmt.Println("Configuration validation errors:")
		for _, p := range verr.Problems {
			fmt.Printf("  - %s\n", p)
		}
		return nil, fmt.Errorf("run 'auroraeye configure' to fix the configuration")
	}

	return nil, err
}

// splitTrim splits on sep and trims whitespace from each piece.
func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
