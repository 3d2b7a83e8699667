package cmd

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/errdefs"
	"github.com/i3keep/i3keep/internal/layout"
	"github.com/i3keep/i3keep/internal/wm"
)

var restoreCmd = &cobra.Command{
	Use:   "restore [FILE]",
	Short: "Feed a saved layout back as placeholder windows",
	Long: `Append a saved layout document so the window manager creates placeholder
windows that swallow matching windows as they launch. Reads FILE, or stdin
when no file is given.

Swallow criteria a save leaves commented out can be activated in one step
with --activate-swallows instead of hand editing the file.

Examples:
  i3keep restore ws1.json
  i3keep restore --workspace 2 --activate-swallows < mail.json
  i3keep archive show docked | i3keep restore`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().String("workspace", "", "Restore onto this workspace instead of the focused one")
	restoreCmd.Flags().Bool("activate-swallows", false, "Uncomment the advisory swallow criteria before appending")
}

func runRestore(cmd *cobra.Command, args []string) error {
	workspace, _ := cmd.Flags().GetString("workspace")
	activate, _ := cmd.Flags().GetBool("activate-swallows")

	doc, source, err := readLayoutDocument(args)
	if err != nil {
		return err
	}
	if activate {
		doc = layout.ActivateSwallows(doc)
	}

	client, err := wm.Connect()
	if err != nil {
		return err
	}
	defer client.Close()

	// append_layout only accepts a path, so the (possibly rewritten)
	// document goes through a temp file.
	tmp, err := os.CreateTemp("", "i3keep-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(doc); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	results, err := client.RunCommand(wm.AppendLayoutCommand(workspace, tmp.Name()))
	if err != nil {
		return err
	}
	if err := wm.CommandError(results); err != nil {
		return err
	}

	log.Info("layout appended", "source", source, "workspace", workspaceOrFocused(workspace))
	return nil
}

func workspaceOrFocused(workspace string) string {
	if workspace == "" {
		return "focused"
	}
	return workspace
}

// readLayoutDocument reads the layout from the FILE argument or stdin. A
// terminal on stdin is refused: an interactive user almost certainly forgot
// the file argument.
func readLayoutDocument(args []string) (doc, source string, err error) {
	if len(args) == 1 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", errdefs.Wrap(errdefs.CodeInvalidInput, err, "read layout %s", args[0])
		}
		return string(data), args[0], nil
	}
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", "", errdefs.New(errdefs.CodeInvalidInput,
			"refusing to read a layout from a terminal; pass a file or pipe a document")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", errdefs.Wrap(errdefs.CodeInvalidInput, err, "read layout from stdin")
	}
	return string(data), "stdin", nil
}
