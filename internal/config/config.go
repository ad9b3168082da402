// Package config loads the recovery log manager's runtime configuration,
// the way the teacher's cmd/minidb/main.go uses flag.String/flag.Int
// directly — no config-file library anywhere in the pack's complete repos.
package config

import (
	"flag"
	"fmt"
	"time"
)

// ManagerConfig controls where the log manager's storage engine keeps its
// files, how large its buffer pool is, and how often it checkpoints.
type ManagerConfig struct {
	DataDir            string
	BufferPages        int
	CheckpointInterval time.Duration
	CheckpointEnabled  bool
	LogLevel           string
	LogJSON            bool
}

// Default returns the out-of-the-box configuration.
func Default() ManagerConfig {
	return ManagerConfig{
		DataDir:            "./recoverylog-data",
		BufferPages:        256,
		CheckpointInterval: 5 * time.Minute,
		CheckpointEnabled:  true,
		LogLevel:           "info",
	}
}

// RegisterFlags binds cfg's fields to flags on fs; after fs.Parse, cfg holds
// the parsed values.
func (cfg *ManagerConfig) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "data directory for page, log, and master-LSN files")
	fs.IntVar(&cfg.BufferPages, "buffer", cfg.BufferPages, "buffer pool size in pages")
	fs.DurationVar(&cfg.CheckpointInterval, "checkpoint-interval", cfg.CheckpointInterval, "time between automatic checkpoints")
	fs.BoolVar(&cfg.CheckpointEnabled, "checkpoint-enabled", cfg.CheckpointEnabled, "enable the background checkpoint daemon")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "emit structured JSON logs instead of text")
}

// Validate rejects configurations the manager cannot run with.
func (cfg ManagerConfig) Validate() error {
	if cfg.DataDir == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	if cfg.BufferPages <= 0 {
		return fmt.Errorf("buffer pages must be positive, got %d", cfg.BufferPages)
	}
	if cfg.CheckpointEnabled && cfg.CheckpointInterval <= 0 {
		return fmt.Errorf("checkpoint interval must be positive when checkpointing is enabled, got %v", cfg.CheckpointInterval)
	}
	return nil
}
