package cmd

import (
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/archive"
	"github.com/i3keep/i3keep/internal/errdefs"
	"github.com/i3keep/i3keep/internal/model"
)

// wmSource is the window-manager surface subtree selection needs. *wm.Client
// implements it; tests substitute a fake.
type wmSource interface {
	GetTree() (*model.Node, error)
	FocusedWorkspace() (string, error)
}

// addSelectionFlags registers the selector flags shared by save, dump, graph
// and preview.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("workspace", "", "Select a workspace by name or number")
	cmd.Flags().String("output", "", "Select an output by name")
}

// getSelectionFlags reads the selector flags from a command.
func getSelectionFlags(cmd *cobra.Command) (workspace, output string) {
	workspace, _ = cmd.Flags().GetString("workspace")
	output, _ = cmd.Flags().GetString("output")
	return
}

// validateSelection rejects conflicting selectors. It runs before any IPC so
// a user error never opens a connection.
func validateSelection(workspace, output string) error {
	if workspace != "" && output != "" {
		return errdefs.New(errdefs.CodeConflictingSelection,
			"--workspace and --output are mutually exclusive")
	}
	return nil
}

// selectSubtree fetches the tree and resolves the subtree a command targets.
// With no selector set, fallbackFocused selects the focused workspace;
// otherwise the whole tree is returned.
func selectSubtree(src wmSource, workspace, output string, fallbackFocused bool) (*model.Node, string, error) {
	if workspace == "" && output == "" && fallbackFocused {
		focused, err := src.FocusedWorkspace()
		if err != nil {
			return nil, "", err
		}
		workspace = focused
	}
	tree, err := src.GetTree()
	if err != nil {
		return nil, "", err
	}
	return model.Select(tree, workspace, output)
}

// openArchive opens the layout archive at the configured path.
func openArchive() (*archive.Store, error) {
	return archive.Open(cfg.Archive.Path)
}
