package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string `env:"LUDO_HTTP_ADDR" envDefault:":8080"`

	// StepInterval paces piece step broadcasts; zero sends them at once.
	StepInterval time.Duration `env:"LUDO_STEP_INTERVAL" envDefault:"200ms"`

	// DiceSeed fixes the RNG seed for every room. Zero draws a fresh
	// crypto seed per room.
	DiceSeed int64 `env:"LUDO_DICE_SEED" envDefault:"0"`

	LockOnWin     bool `env:"LUDO_LOCK_ON_WIN" envDefault:"false"`
	AllowUnseated bool `env:"LUDO_ALLOW_UNSEATED" envDefault:"true"`
	RoomCodeLen   int  `env:"LUDO_ROOM_CODE_LEN" envDefault:"6"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StepInterval < 0 {
		return Config{}, fmt.Errorf("LUDO_STEP_INTERVAL must not be negative, got %s", cfg.StepInterval)
	}
	if cfg.RoomCodeLen <= 0 {
		return Config{}, fmt.Errorf("LUDO_ROOM_CODE_LEN must be positive, got %d", cfg.RoomCodeLen)
	}
	return cfg, nil
}

var (
	defaultCfg  Config
	defaultOnce sync.Once
)

// Get returns the process-wide configuration, loaded on first use. An
// invalid environment falls back to the built-in defaults.
func Get() *Config {
	defaultOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Printf("config: %v; using defaults", err)
			cfg = Defaults()
		}
		defaultCfg = cfg
	})
	return &defaultCfg
}

func Defaults() Config {
	return Config{
		HTTPAddr:      ":8080",
		StepInterval:  200 * time.Millisecond,
		AllowUnseated: true,
		RoomCodeLen:   6,
	}
}
