package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cursorhist/internal/config"
	"cursorhist/internal/index"
	"cursorhist/internal/transcript"
)

var previewCmd = &cobra.Command{
	Use:   "preview <session-id | transcript-path>",
	Short: "Print the first lines of a session transcript",
	Long: `Renders a compact preview of a transcript: user and assistant turns
with direction markers, tool calls with a wrench. The argument is a
session id looked up in the projects tree, or a transcript path.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lines, _ := cmd.Flags().GetInt("lines")
		path, err := locateTranscript(cfg, args[0])
		if err != nil {
			return err
		}
		transcript.PreviewFile(cmd.OutOrStdout(), path, lines)
		return nil
	},
}

// locateTranscript maps a command-line argument to a transcript file:
// an existing file path is used as-is; anything else is treated as a
// session id, resolved through the cache when possible and otherwise
// searched for under the projects directory.
func locateTranscript(cfg config.Config, arg string) (string, error) {
	if isRegular(arg) {
		return arg, nil
	}
	if sessions, err := index.ReadCache(cfg.CachePath); err == nil {
		for _, s := range sessions {
			// A cached path can be stale; fall through to a live
			// probe when the file is gone.
			if s.ID == arg && isRegular(s.TranscriptPath) {
				return s.TranscriptPath, nil
			}
		}
	}
	if path := index.FindTranscript(cfg.ProjectsDir, arg); path != "" {
		return path, nil
	}
	return "", fmt.Errorf("no transcript found for session %q", arg)
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntP("lines", "n", 20, "Maximum preview lines to print")
}
