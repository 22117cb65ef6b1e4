package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cursorhist/internal/config"
	"cursorhist/internal/index"
)

const defaultDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the projects tree and reindex on changes",
	Long: `Runs an initial index, then watches the projects directory and
rebuilds the cache after each burst of transcript changes settles.
Stops on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		debounce, _ := cmd.Flags().GetDuration("debounce")
		return runWatch(cmd.Context(), cfg, debounce, cmd.ErrOrStderr())
	},
}

func runWatch(
	ctx context.Context,
	cfg config.Config,
	debounce time.Duration,
	progress io.Writer,
) error {
	sessions, err := rebuildIndex(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(progress, "Indexed %d sessions.\n", len(sessions))

	onChange := func(paths []string) {
		sessions, err := rebuildIndex(cfg)
		if err != nil {
			log.Printf("reindex failed: %v", err)
			return
		}
		log.Printf("Reindexed %d sessions after %d changed paths",
			len(sessions), len(paths))
	}
	watcher, err := index.NewWatcher(debounce, onChange)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Stop()

	watched, err := watcher.WatchTree(cfg.ProjectsDir)
	if err != nil {
		return fmt.Errorf("watching %s: %w", cfg.ProjectsDir, err)
	}
	watcher.Start()
	fmt.Fprintf(progress, "Watching %d directories under %s\n",
		watched, cfg.ProjectsDir)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	fmt.Fprintln(progress, "Stopping.")
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("debounce", defaultDebounce,
		"How long to let changes settle before reindexing")
}
