package model

import (
	"fmt"

	"github.com/i3keep/i3keep/internal/errdefs"
)

// Select resolves the part of root that a save or dump targets. At most one
// of workspace and output may be set; both empty selects the whole tree. The
// returned string names what was selected, e.g. `workspace "mail"`, for
// logging and archive records.
//
// Selecting an output descends to its content container so dock areas never
// leak into saved layouts.
func Select(root *Node, workspace, output string) (*Node, string, error) {
	if workspace != "" && output != "" {
		return nil, "", errdefs.New(errdefs.CodeConflictingSelection,
			"workspace and output are mutually exclusive")
	}
	switch {
	case workspace != "":
		ws := Find(root, ByWorkspace(workspace))
		if ws == nil {
			return nil, "", errdefs.New(errdefs.CodeSelectionNotFound,
				"workspace %q not found", workspace)
		}
		return ws, fmt.Sprintf("workspace %q", workspace), nil
	case output != "":
		out := Find(root, ByOutput(output))
		if out == nil {
			return nil, "", errdefs.New(errdefs.CodeSelectionNotFound,
				"output %q not found", output)
		}
		content := Content(out)
		if content == nil {
			return nil, "", errdefs.New(errdefs.CodeSelectionNotFound,
				"output %q has no content container", output)
		}
		return content, fmt.Sprintf("output %q", output), nil
	default:
		return root, "tree", nil
	}
}
