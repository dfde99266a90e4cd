package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode"
)

// Identifier length bounds accepted by the candidate generator.
const (
	minLength = 2
	maxLength = 255
)

// Config is the on-disk service configuration: the tenant list plus the
// process-level port and log level.
type Config struct {
	Applications []Application `json:"applications"`
	Port         int           `json:"port"`
	Log          LogConfig     `json:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `json:"level"`
}

// Load reads and validates the JSON configuration file at path, applying the
// default alphabet and length to applications that omit them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Applications))

	for i := range cfg.Applications {
		app := &cfg.Applications[i]

		if app.Characters == "" {
			app.Characters = DefaultCharacters
		}

		if app.MaxLength == 0 {
			app.MaxLength = DefaultMaxLength
		}

		if err := validateApplication(app); err != nil {
			return nil, fmt.Errorf("application %q: %w", app.ID, err)
		}

		if seen[app.ID] {
			return nil, fmt.Errorf("duplicate application id %q", app.ID)
		}

		seen[app.ID] = true
	}

	return &cfg, nil
}

func validateApplication(app *Application) error {
	if app.ID == "" {
		return fmt.Errorf("missing id")
	}

	if app.Key == "" {
		return fmt.Errorf("missing api key")
	}

	if app.URL == "" {
		return fmt.Errorf("missing base url")
	}

	if app.MaxLength < minLength || app.MaxLength > maxLength {
		return fmt.Errorf("maxLength must be between %d and %d, got %d", minLength, maxLength, app.MaxLength)
	}

	if len(app.Characters) < 2 {
		return fmt.Errorf("characters must contain at least 2 characters")
	}

	for _, c := range app.Characters {
		if c > unicode.MaxASCII {
			return fmt.Errorf("characters must be ASCII, got %q", c)
		}
	}

	return nil
}
