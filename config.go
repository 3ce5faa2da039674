package main

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is read from PARKOUR_* environment variables first; command line
// flags override them.
type Config struct {
	Level   string `env:"PARKOUR_LEVEL" envDefault:"ledges.json"`
	Debug   bool   `env:"PARKOUR_DEBUG"`
	Verbose bool   `env:"PARKOUR_VERBOSE"`
	Watch   bool   `env:"PARKOUR_WATCH" envDefault:"true"`
	TPS     int    `env:"PARKOUR_TPS" envDefault:"60"`
	Width   int    `env:"PARKOUR_WIDTH" envDefault:"1280"`
	Height  int    `env:"PARKOUR_HEIGHT" envDefault:"720"`
}

func parseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func loadConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := parseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if fs == nil {
		return cfg, nil
	}

	fs.StringVar(&cfg.Level, "level", cfg.Level, "level file in levels/ (.json optional)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "draw collision and probe debug overlays")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log every probe and sweep")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "hot reload prefabs from disk")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "simulation ticks per second")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TPS <= 0 {
		return fmt.Errorf("config: tps must be positive, got %d", c.TPS)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: bad window size %dx%d", c.Width, c.Height)
	}
	if c.Level == "" {
		return fmt.Errorf("config: level is required")
	}
	return nil
}
