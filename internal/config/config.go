// Package config loads process configuration from the environment and
// optional .env files.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when a nil pointer is provided to Load
	ErrNilPointer = errors.New("nil pointer provided to config loader")

	// ErrInvalidConfig is returned when parsed values are out of range
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds the settings of the demo binary.
type Config struct {
	MachineID        string        `env:"STATEFLOW_MACHINE_ID" envDefault:"game-client"`
	LogLevel         string        `env:"STATEFLOW_LOG_LEVEL" envDefault:"info"`
	LogFormat        string        `env:"STATEFLOW_LOG_FORMAT" envDefault:"text"`
	SnapshotDir      string        `env:"STATEFLOW_SNAPSHOT_DIR"`
	SnapshotFormat   string        `env:"STATEFLOW_SNAPSHOT_FORMAT" envDefault:"json"`
	TickRate         time.Duration `env:"STATEFLOW_TICK_RATE" envDefault:"16ms"`
	MaxEventsPerTick int           `env:"STATEFLOW_MAX_EVENTS_PER_TICK" envDefault:"1000"`
	Definition       string        `env:"STATEFLOW_DEFINITION"`
}

// Validate checks values env cannot check by itself.
func (c Config) Validate() error {
	switch {
	case c.MachineID == "":
		return fmt.Errorf("%w: machine id is empty", ErrInvalidConfig)
	case strings.ContainsAny(c.MachineID, `/\`) || !filepath.IsLocal(c.MachineID):
		return fmt.Errorf("%w: machine id %q must be a plain file name", ErrInvalidConfig, c.MachineID)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate %s must be positive", ErrInvalidConfig, c.TickRate)
	case c.MaxEventsPerTick <= 0:
		return fmt.Errorf("%w: max events per tick %d must be positive", ErrInvalidConfig, c.MaxEventsPerTick)
	}
	switch c.SnapshotFormat {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("%w: snapshot format %q must be json, yaml or yml", ErrInvalidConfig, c.SnapshotFormat)
	}
	return nil
}

// Load parses the environment into v. Files are loaded with godotenv first;
// missing files are ignored and variables already set win.
func Load[T any](v *T, files ...string) error {
	if v == nil {
		return ErrNilPointer
	}
	for _, f := range files {
		// Ignore errors - the .env file might not exist and that's ok
		_ = godotenv.Load(f)
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// LoadConfig loads and validates Config.
func LoadConfig(files ...string) (Config, error) {
	var cfg Config
	if err := Load(&cfg, files...); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
