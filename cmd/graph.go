package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/errdefs"
	"github.com/i3keep/i3keep/internal/preview"
	"github.com/i3keep/i3keep/internal/wm"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Render the container hierarchy as a Graphviz graph",
	Long: `Render the selected subtree's container hierarchy as Graphviz DOT on
stdout, or as SVG with --svg. Tiling containment is drawn solid, floating
containment dashed.

Examples:
  i3keep graph | dot -Tpng > layout.png
  i3keep graph --workspace 2 --svg -o ws2.svg`,
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	addSelectionFlags(graphCmd)
	graphCmd.Flags().Bool("svg", false, "Render SVG instead of DOT (requires -o)")
	graphCmd.Flags().StringP("out", "o", "", "Write to FILE instead of stdout")
}

func runGraph(cmd *cobra.Command, args []string) error {
	workspace, outputName := getSelectionFlags(cmd)
	svg, _ := cmd.Flags().GetBool("svg")
	outPath, _ := cmd.Flags().GetString("out")

	if err := validateSelection(workspace, outputName); err != nil {
		return err
	}
	if svg && outPath == "" {
		return errdefs.New(errdefs.CodeInvalidInput, "--svg requires -o FILE")
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

	dot := preview.ToDOT(*subtree)
	if !svg {
		if outPath == "" {
			fmt.Print(dot)
			return nil
		}
		return os.WriteFile(outPath, []byte(dot), 0o644)
	}

	rendered, err := preview.RenderSVG(cmd.Context(), dot)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, rendered, 0o644); err != nil {
		return err
	}
	log.Info("graph rendered", "path", outPath, "bytes", len(rendered))
	return nil
}
