// Package config carries the runtime configuration of the print
// daemon. Call LoadDefaultConfig or LoadFile once at startup, then
// read the Config global.
package config

import (
	"fmt"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/mcuadros/go-defaults"
)

// Daemon is the daemon configuration. Zero values in a TOML file fall
// back to the defaults in the struct tags.
type Daemon struct {
	// Listen is the address the HTTP API binds to.
	Listen string `toml:"listen" default:":9090"`

	// StorePath is the SQLite database holding enrolled prints.
	StorePath string `toml:"store_path" default:"fprint.db"`

	// MatchThreshold is the minimum similarity score a capture must
	// reach against an enrolled print to count as the same finger.
	MatchThreshold float64 `toml:"match_threshold" default:"40"`

	// Workers bounds the engine's parallelism. Zero means one worker
	// per CPU.
	Workers int `toml:"workers"`

	LogDir         string `toml:"log_dir" default:"logs"`
	LogMaxAgeDays  int    `toml:"log_max_age_days" default:"7"`
	LogRotateHours int    `toml:"log_rotate_hours" default:"24"`
}

// Config is the active configuration.
var Config *Daemon

// LoadDefaultConfig resets Config to the built-in defaults.
func LoadDefaultConfig() {
	cfg := new(Daemon)
	defaults.SetDefaults(cfg)
	finish(cfg)
	Config = cfg
}

// LoadFile loads a TOML file over the built-in defaults and makes it
// the active configuration.
func LoadFile(path string) error {
	cfg := new(Daemon)
	defaults.SetDefaults(cfg)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	finish(cfg)
	Config = cfg
	return nil
}

func finish(cfg *Daemon) {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
}
