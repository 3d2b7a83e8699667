package cmd

import (
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/output"
	"github.com/i3keep/i3keep/internal/wm"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the raw layout tree",
	Long: `Print the window manager's layout tree without normalization — every node
with its ids, rects and properties. Defaults to the whole tree; --workspace
or --output limits the dump to one subtree.`,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	addSelectionFlags(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	workspace, outputName := getSelectionFlags(cmd)
	if err := validateSelection(workspace, outputName); err != nil {
		return err
	}

	client, err := wm.Connect()
	if err != nil {
		return err
	}
	defer client.Close()

	subtree, _, err := selectSubtree(client, workspace, outputName, false)
	if err != nil {
		return err
	}
	return output.Print(subtree)
}
