package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "SIGNALSIM_"

// Config carries everything a simulation run needs. Flags override the
// values Load produces.
type Config struct {
	StorePath   string
	OutputPath  string
	Cycles      int
	Delay       time.Duration
	Seed        uint64
	MetricsAddr string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StorePath:  "TrafficSystem.yaml",
		OutputPath: "Updated_TrafficSystem.yaml",
		Cycles:     10,
		Delay:      time.Second,
	}
}

// Load reads envFile into the environment if it exists, then applies any
// SIGNALSIM_* variables over the defaults.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file %q: %w", envFile, err)
		}
	}
	return FromEnv(Default())
}

// FromEnv overlays SIGNALSIM_* variables onto base.
func FromEnv(base Config) (Config, error) {
	cfg := base
	if v, ok := lookup("STORE"); ok {
		cfg.StorePath = v
	}
	if v, ok := lookup("OUTPUT"); ok {
		cfg.OutputPath = v
	}
	if v, ok := lookup("METRICS_ADDR"); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := lookup("CYCLES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sCYCLES %q: %w", envPrefix, v, err)
		}
		cfg.Cycles = n
	}
	if v, ok := lookup("DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sDELAY %q: %w", envPrefix, v, err)
		}
		cfg.Delay = d
	}
	if v, ok := lookup("SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %sSEED %q: %w", envPrefix, v, err)
		}
		cfg.Seed = n
	}
	return cfg, cfg.Validate()
}

// Validate rejects values no run can use.
func (c Config) Validate() error {
	if c.Cycles < 0 {
		return fmt.Errorf("cycles must not be negative, got %d", c.Cycles)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	}
	if c.StorePath == "" {
		return errors.New("store path must be set")
	}
	return nil
}

// SeedOrNow returns Seed, or a time-derived seed when Seed is zero.
func (c Config) SeedOrNow() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
