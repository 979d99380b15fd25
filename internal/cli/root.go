// Package cli provides the command-line interface for dbtdesc.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli/commands"
	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbtdesc",
		Short: "dbtdesc - Description linter for dbt schema files",
		Long: `dbtdesc validates the description fields of dbt schema YAML files
against a set of writing rules, and rewrites failing descriptions for
rules that carry an automatic fix.

Fixes patch only the description text: comments, quoting, key order and
indentation keep their exact bytes. Everything else about the file is
left alone.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			// Store the logger in context for commands to pick up
			logger := newLogger(cfg.Verbose)
			ctx := context.WithValue(cmd.Context(), config.LoggerKey(), logger)
			cmd.SetContext(ctx)

			// Print config file used (if verbose)
			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Description linter for dbt schema files
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./dbtdesc.yaml)")
	rootCmd.PersistentFlags().String("pattern", "", "Schema file name to discover (default: schema.yml)")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "Directory names to skip during discovery")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "Number of files to process concurrently")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Flag parse failures are invocation mistakes, same class as an unknown
	// rule name, so they exit with the usage code.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return commands.NewUsageError("%s", err.Error())
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewFixCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger builds the run logger. Verbose runs log debug output to stderr;
// quiet runs discard everything.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// Execute runs the root command and returns the process exit code:
// 0 when every checked description passes, 1 when violations or file
// failures were found (or the run itself failed), 2 for usage mistakes.
func Execute() int {
	rootCmd := NewRootCmd()
	return exitCode(rootCmd.Execute())
}

// exitCode maps a command error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}

	var usageErr *commands.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if errors.Is(err, commands.ErrViolationsFound) {
		// Violations were already reported line by line
		return 1
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dbtdesc.

To load completions:

Bash:
  $ source <(dbtdesc completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dbtdesc completion bash > /etc/bash_completion.d/dbtdesc
  # macOS:
  $ dbtdesc completion bash > $(brew --prefix)/etc/bash_completion.d/dbtdesc

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dbtdesc completion zsh > "${fpath[1]}/_dbtdesc"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dbtdesc completion fish | source

  # To load completions for each session, execute once:
  $ dbtdesc completion fish > ~/.config/fish/completions/dbtdesc.fish

PowerShell:
  PS> dbtdesc completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> dbtdesc completion powershell > dbtdesc.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
