package cli

import (
	"context"
	"fmt"

	"github.com/mvp-joe/autodoc/internal/logging"
	"github.com/mvp-joe/autodoc/internal/watcher"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Generate the site and regenerate changed files until interrupted",
	Long: `Watch performs a full generation, then watches the project for changes to
matched source files. Each debounced batch of changes regenerates the
affected pages and the index; deleted files lose their pages. In a git
work tree, switching branches regenerates the whole site.

The debounce window is watch.debounce_ms in the configuration.
`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	watchCmd.Flags().BoolVar(&catalogFlag, "catalog", false, "Also keep the catalog up to date")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	rootDir, cfg, err := loadProject()
	if err != nil {
		return err
	}
	logger := logging.Logger()

	cat, err := maybeCatalog(rootDir, cfg)
	if err != nil {
		return err
	}
	if cat != nil {
		defer cat.Close()
	}

	out := cmd.OutOrStdout()
	gen, err := newGenerator(rootDir, cfg, out, quietFlag, cat)
	if err != nil {
		return err
	}
	defer gen.Close()

	res, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("initial generation failed: %w", err)
	}
	if err := failureError(res); err != nil {
		logger.Warnw("initial generation had failures", "error", err)
	}

	w, err := watcher.New(rootDir, gen.Discovery(), func(ctx context.Context, changed []string) {
		res, err := gen.Update(ctx, changed)
		if err != nil {
			logger.Errorw("regeneration failed", "error", err)
			return
		}
		for _, page := range res.Pages {
			logger.Debugw("page written", "file", gen.RelOutput(page.Source))
		}
		for _, failure := range res.Failures {
			logger.Warnw("file failed", "file", failure.Path, "error", failure.Err)
		}
		logger.Infow("regenerated",
			"files", res.Stats.Parsed,
			"removed", res.Stats.Removed,
			"functions", res.Stats.Functions,
			"duration", res.Stats.Duration)
	},
		watcher.WithDebounce(cfg.Watch.Debounce()),
		watcher.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	coordinated := false
	if gitDir := watcher.FindGitDir(rootDir); gitDir != "" {
		branches, err := watcher.NewBranchWatcher(gitDir, logger)
		if err != nil {
			logger.Warnw("branch switches will not trigger a full regeneration", "error", err)
		} else {
			coord := watcher.NewCoordinator(w, branches, func(ctx context.Context, oldBranch, newBranch string) {
				res, err := gen.Generate(ctx)
				if err != nil {
					logger.Errorw("regeneration after branch switch failed", "branch", newBranch, "error", err)
					return
				}
				logger.Infow("regenerated after branch switch",
					"from", oldBranch,
					"to", newBranch,
					"files", res.Stats.Parsed,
					"failed", res.Stats.Failed)
			}, logger)
			if err := coord.Start(ctx); err != nil {
				return fmt.Errorf("failed to start watcher: %w", err)
			}
			defer coord.Stop()
			coordinated = true
		}
	}
	if !coordinated {
		w.Start(ctx)
		defer w.Stop()
	}

	if !quietFlag {
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", rootDir)
	}
	<-ctx.Done()
	logger.Infow("watch mode stopped")
	return nil
}
