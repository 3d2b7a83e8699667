package cmd

import (
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/output"
	"github.com/i3keep/i3keep/internal/wm"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List workspaces or outputs",
	Long:  "List workspaces with focus, visibility and urgency flags, or outputs with --outputs.",
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().Bool("outputs", false, "List outputs instead of workspaces")
}

func runLs(cmd *cobra.Command, args []string) error {
	outputs, _ := cmd.Flags().GetBool("outputs")

	client, err := wm.Connect()
	if err != nil {
		return err
	}
	defer client.Close()

	if outputs {
		list, err := client.GetOutputs()
		if err != nil {
			return err
		}
		return output.Print(list)
	}

	list, err := client.GetWorkspaces()
	if err != nil {
		return err
	}
	return output.Print(list)
}
