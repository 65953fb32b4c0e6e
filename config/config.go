// Package config loads harness settings from the environment, then lets
// command-line flags override them.
package config

import (
	"flag"
	"fmt"

	"gtpbench/board"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

type Config struct {
	BoardSize  int     `env:"GTPBENCH_BOARD_SIZE" envDefault:"19"`
	Komi       float64 `env:"GTPBENCH_KOMI" envDefault:"7.5"`
	LogLevel   string  `env:"GTPBENCH_LOG_LEVEL" envDefault:"info"`
	MetricsDir string  `env:"GTPBENCH_METRICS_DIR"`
}

// Parse reads the environment into a Config and applies flags from args.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.IntVar(&cfg.BoardSize, "boardsize", cfg.BoardSize, "Initial board size")
	fs.Float64Var(&cfg.Komi, "komi", cfg.Komi, "Initial komi")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level written to stderr (trace, debug, info, warn, error, disabled)")
	fs.StringVar(&cfg.MetricsDir, "metrics-dir", cfg.MetricsDir, "Directory for per-command timing reports; empty disables them")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.BoardSize < 1 || cfg.BoardSize > board.MaxSize {
		return Config{}, fmt.Errorf("board size %d outside [1, %d]", cfg.BoardSize, board.MaxSize)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level is the zerolog level named by LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}
