package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/cli/output"
	"github.com/BEEQUIP/dbt-yaml-description-validator/internal/watch"
	_ "github.com/BEEQUIP/dbt-yaml-description-validator/pkg/lint/rules" // register description rules
)

// WatchOptions holds options for the watch command.
type WatchOptions struct {
	Rule   string // Rule name to validate against
	Format string // Output format: text, markdown, json
	Root   string // Directory to watch
}

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	opts := &WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Recheck descriptions whenever schema files change",
		Args:  cobra.MaximumNArgs(1),
		Long: `Watch a project and rerun the description check on every change.

Runs an initial check, then watches the directory tree for schema file
writes and rechecks after each change. Excluded directories and hidden
directories are not watched. Stop with Ctrl+C.`,
		Example: `  # Watch the current project with the period rule
  dbtdesc watch --rule period

  # Watch a specific directory
  dbtdesc watch --rule capital ./models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Root = "."
			if len(args) > 0 {
				opts.Root = args[0]
			}
			return runWatch(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Rule, "rule", "r", "", "Rule to validate against (see 'dbtdesc rules')")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runWatch(cmd *cobra.Command, opts *WatchOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	// Override renderer if format flag is set
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	rule, err := resolveRule(opts.Rule, cmdCtx.Cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	// recheck discovers files fresh on every run so new schema files are
	// picked up. The violations sentinel is swallowed: watch keeps running.
	var mu sync.Mutex
	recheck := func() {
		mu.Lock()
		defer mu.Unlock()

		paths, err := cmdCtx.Engine.Discover(opts.Root)
		if err != nil {
			r.Failure(fmt.Sprintf("discovery failed: %v", err))
			return
		}
		result, err := cmdCtx.Engine.Check(ctx, paths, rule)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				r.Failure(err.Error())
			}
			return
		}
		_ = renderCheckResult(r, rule, result)
	}

	// Initial run
	recheck()

	r.Println("")
	r.Printf("Watching %s for %s changes (rule '%s'). Press Ctrl+C to stop.\n", opts.Root, cmdCtx.Cfg.Pattern, rule.Name)

	w := watch.New(watch.Config{
		Root:     opts.Root,
		Pattern:  cmdCtx.Cfg.Pattern,
		Exclude:  cmdCtx.Cfg.Exclude,
		OnChange: recheck,
		Logger:   cmdCtx.Logger,
	})
	return w.Run(ctx)
}
