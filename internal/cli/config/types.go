// Package config provides configuration management for the dbtdesc CLI.
//
// Settings are merged from four layers: built-in defaults, a dbtdesc.yaml
// file, DBTDESC_* environment variables, and command-line flags, with later
// layers taking precedence.
package config

import (
	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/engine"
)

// Config holds all CLI configuration options.
type Config struct {
	Pattern      string   `koanf:"pattern"`
	Rule         string   `koanf:"rule"`
	Exclude      []string `koanf:"exclude"`
	Jobs         int      `koanf:"jobs"`
	Verbose      bool     `koanf:"verbose"`
	OutputFormat string   `koanf:"output"`
}

// Default configuration values - discovery defaults come from the engine
const (
	DefaultPattern = engine.DefaultPattern
	DefaultJobs    = 1
	DefaultOutput  = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
