package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CiaranMcAleer/medref/internal/config"
	"github.com/CiaranMcAleer/medref/internal/library"
	"github.com/CiaranMcAleer/medref/internal/watch"
)

func newUpdateCmd() *cobra.Command {
	var check, watchMode bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Refresh the topics array of every category index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			syncer := newSynchronizer(cfg, logger, check)
			out := cmd.OutOrStdout()
			if err := runUpdate(cmd.Context(), syncer, out); err != nil {
				return err
			}
			if !watchMode {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchLibrary(ctx, cfg, logger, syncer, out)
		},
	}
	cmd.Flags().String("root", ".", "library root directory")
	cmd.Flags().Int("jobs", 1, "number of folders processed at once")
	cmd.Flags().Bool("render-drafts", false, "render Markdown drafts into topic pages before indexing")
	cmd.Flags().Int64("size-warn-kb", library.DefaultSizeWarnKB, "warn about topics larger than this once gzipped (0 disables)")
	cmd.Flags().BoolVar(&check, "check", false, "report stale indexes without writing; exit non-zero if any")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "keep running and update on every change")
	cmd.MarkFlagsMutuallyExclusive("check", "watch")
	return cmd
}

func newSynchronizer(cfg *config.Config, logger *zap.Logger, check bool) *library.Synchronizer {
	return library.NewSynchronizer(afero.NewOsFs(), cfg.Root,
		library.WithIndexFile(cfg.IndexFile),
		library.WithSkipDirs(cfg.SkipDirs),
		library.WithTopicExtensions(cfg.TopicExtensions),
		library.WithJobs(cfg.Jobs),
		library.WithSizeWarnKB(cfg.SizeWarnKB),
		library.WithDrafts(cfg.RenderDrafts),
		library.WithCheckOnly(check),
		library.WithSyncLogger(logger),
	)
}

func runUpdate(ctx context.Context, syncer *library.Synchronizer, out io.Writer) error {
	report, err := syncer.Run(ctx)
	if report != nil {
		fmt.Fprintln(out, report.String())
	}
	return err
}

func watchLibrary(ctx context.Context, cfg *config.Config, logger *zap.Logger, syncer *library.Synchronizer, out io.Writer) error {
	folders, err := library.DiscoverCategoryDirs(afero.NewOsFs(), cfg.Root, cfg.IndexFile, cfg.SkipDirs)
	if err != nil {
		return fmt.Errorf("error reading library root: %w", err)
	}
	dirs := []string{cfg.Root}
	for _, f := range folders {
		dirs = append(dirs, filepath.Join(cfg.Root, f))
	}
	w, err := watch.New(dirs, watch.WithIgnoreNames(cfg.IndexFile), watch.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("[Watch] watching for changes", zap.Int("folders", len(folders)))
	return w.Run(ctx, func(ctx context.Context) error {
		return runUpdate(ctx, syncer, out)
	})
}
