package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cursorhist/internal/attribution"
	"cursorhist/internal/config"
	"cursorhist/internal/index"
	"cursorhist/internal/workspace"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the session index cache",
	Long: `Scans every project folder under the Cursor projects directory, reads
each transcript, and writes the session index to the cache file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sessions, err := rebuildIndex(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Indexed %d sessions.\n", len(sessions))
		return nil
	},
}

// rebuildIndex scans the projects tree and rewrites the cache file.
func rebuildIndex(cfg config.Config) ([]index.Session, error) {
	if _, err := os.Stat(cfg.ProjectsDir); err != nil {
		return nil, fmt.Errorf("projects directory not found: %s", cfg.ProjectsDir)
	}
	resolver := workspace.NewResolver(nil)
	models := attribution.LoadModelMap(cfg.TrackingDB)
	sessions := index.Build(cfg.ProjectsDir, resolver, models)
	if err := index.WriteCache(cfg.CachePath, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
