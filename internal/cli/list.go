package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"cursorhist/internal/config"
	"cursorhist/internal/index"
)

const maxListSummary = 60

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed sessions, newest first",
	Long: `Prints the session index as a table. Reads the cache file when one
exists; otherwise the index is rebuilt first. Use --refresh to force
a rebuild.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		refresh, _ := cmd.Flags().GetBool("refresh")
		limit, _ := cmd.Flags().GetInt("limit")
		filter, _ := cmd.Flags().GetString("workspace")

		sessions, err := loadSessions(cfg, refresh)
		if err != nil {
			return err
		}
		sessions = filterSessions(sessions, filter, limit)
		renderSessions(cmd.OutOrStdout(), sessions)
		return nil
	},
}

// loadSessions returns the cached index, rebuilding it when the cache
// is missing, unreadable, or a refresh was requested. The cache is
// disposable, so read failures fall back to a rebuild rather than
// surfacing.
func loadSessions(cfg config.Config, refresh bool) ([]index.Session, error) {
	if !refresh {
		if sessions, err := index.ReadCache(cfg.CachePath); err == nil {
			return sessions, nil
		}
	}
	return rebuildIndex(cfg)
}

func filterSessions(sessions []index.Session, workspace string, limit int) []index.Session {
	if workspace != "" {
		kept := sessions[:0]
		for _, s := range sessions {
			if strings.Contains(s.Workspace, workspace) {
				kept = append(kept, s)
			}
		}
		sessions = kept
	}
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions
}

func renderSessions(w io.Writer, sessions []index.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions indexed.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODIFIED\tWORKSPACE\tMSGS\tTOOLS\tTOKENS\tSIZE\tMODEL\tSUMMARY")
	for _, s := range sessions {
		model := s.Model
		if model == "" {
			model = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\t%s\n",
			humanize.Time(s.ModTime()),
			s.Workspace,
			s.Messages,
			s.ToolCalls,
			s.TotalTokens,
			humanize.Bytes(uint64(s.Size)),
			model,
			clip(s.Summary, maxListSummary),
		)
	}
	tw.Flush()
}

// clip shortens s to at most n bytes without splitting a rune,
// appending an ellipsis when anything was cut.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("refresh", false, "Rebuild the index before listing")
	listCmd.Flags().IntP("limit", "n", 0, "Show at most this many sessions (0 = all)")
	listCmd.Flags().String("workspace", "", "Only sessions whose workspace path contains this substring")
}
