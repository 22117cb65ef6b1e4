// Package cli implements the cursorhist command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cursorhist/internal/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "cursorhist",
	Short: "Browse and index Cursor Agent CLI session history",
	Long: `Cursorhist indexes the session transcripts the Cursor Agent CLI leaves
under ~/.cursor/projects and makes them usable from the shell: list
sessions with summaries and token counts, preview a transcript, or
open one in your editor.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: defaults, then the
// config file, then environment variables, then any flags set on this
// invocation.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if f := cmd.Flag("projects-dir"); f != nil && f.Changed {
		cfg.ProjectsDir = f.Value.String()
	}
	if f := cmd.Flag("tracking-db"); f != nil && f.Changed {
		cfg.TrackingDB = f.Value.String()
	}
	if f := cmd.Flag("cache"); f != nil && f.Changed {
		cfg.CachePath = f.Value.String()
	}
	return cfg, nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("projects-dir", "",
		"Cursor projects directory (default ~/.cursor/projects)")
	pf.String("tracking-db", "",
		"AI code tracking database (default ~/.cursor/ai-tracking/ai-code-tracking.db)")
	pf.String("cache", "",
		"Session index cache file (default <data-dir>/sessions.json)")
}
