package commands

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli/config"
	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli/output"
	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/engine"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext assembles the dependencies commands run with.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	eng := engine.New(engine.Config{
		Pattern: cfg.Pattern,
		Exclude: cfg.Exclude,
		Jobs:    cfg.Jobs,
		Logger:  logger,
	})

	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Engine:   eng,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables. The fallback keeps commands usable when they are
// executed outside the root command, as tests do.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	// Fallback: read from environment with defaults
	jobs := config.DefaultJobs
	if v := os.Getenv("DBTDESC_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			jobs = n
		}
	}

	return &config.Config{
		Pattern:      getEnvOrDefault("DBTDESC_PATTERN", config.DefaultPattern),
		Rule:         os.Getenv("DBTDESC_RULE"),
		Exclude:      engine.DefaultExcludes,
		Jobs:         jobs,
		Verbose:      os.Getenv("DBTDESC_VERBOSE") == "true",
		OutputFormat: getEnvOrDefault("DBTDESC_OUTPUT", config.DefaultOutput),
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
