package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/preview"
	"github.com/i3keep/i3keep/internal/wm"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render a PNG thumbnail of a layout's window geometry",
	Long: `Rasterize the selected subtree's window rectangles into a PNG thumbnail,
labeled with window titles. Gives a spatial impression of a layout without
applying it.

Example:
  i3keep preview --workspace 2 -o ws2.png`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	addSelectionFlags(previewCmd)
	previewCmd.Flags().Float64("scale", 0, "Pixels per window-manager pixel (default from config)")
	previewCmd.Flags().StringP("out", "o", "", "Write the PNG to FILE")
	previewCmd.MarkFlagRequired("out")
}

func runPreview(cmd *cobra.Command, args []string) error {
	workspace, outputName := getSelectionFlags(cmd)
	scale, _ := cmd.Flags().GetFloat64("scale")
	outPath, _ := cmd.Flags().GetString("out")

	if err := validateSelection(workspace, outputName); err != nil {
		return err
	}
	if scale == 0 {
		scale = cfg.Preview.Scale
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

	img, err := preview.RenderPNG(*subtree, scale)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, img, 0o644); err != nil {
		return err
	}
	log.Info("preview rendered", "path", outPath, "bytes", len(img))
	return nil
}
