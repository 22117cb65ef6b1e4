package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <session-id | transcript-path>",
	Short: "Open a session transcript in your editor",
	Long: `Locates the transcript and hands it to an editor. The --editor flag
wins over the configured editor (config.json, then $VISUAL, then
$EDITOR); when none is set the transcript is paged with less.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		path, err := locateTranscript(cfg, args[0])
		if err != nil {
			return err
		}
		flagEditor, _ := cmd.Flags().GetString("editor")
		argv, err := editorCommand(flagEditor, cfg.Editor, path)
		if err != nil {
			return err
		}

		editor := exec.Command(argv[0], argv[1:]...)
		editor.Stdin = os.Stdin
		editor.Stdout = os.Stdout
		editor.Stderr = os.Stderr
		return editor.Run()
	},
}

// editorCommand builds the argv for launching the editor on path. The
// editor string is split shell-style so values like "code --wait"
// work.
func editorCommand(flagEditor, configuredEditor, path string) ([]string, error) {
	editor := flagEditor
	if editor == "" {
		editor = configuredEditor
	}
	if editor == "" {
		editor = "less"
	}

	parts, err := shlex.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("parsing editor command %q: %w", editor, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty editor command %q", editor)
	}
	return append(parts, path), nil
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().String("editor", "", "Editor command to open the transcript with")
}
