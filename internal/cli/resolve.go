package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cursorhist/internal/workspace"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <encoded-name>...",
	Short: "Decode encoded project folder names to workspace paths",
	Long: `Cursor flattens a workspace path into a folder name by replacing every
"/" and "." with "-". This command reverses that, checking the live
filesystem to tell the separators apart. One decoded path is printed
per argument.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := workspace.NewResolver(nil)
		for _, name := range args {
			fmt.Fprintln(cmd.OutOrStdout(), resolver.Decode(name))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
