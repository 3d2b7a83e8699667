package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/archive"
	"github.com/i3keep/i3keep/internal/layout"
	"github.com/i3keep/i3keep/internal/model"
	"github.com/i3keep/i3keep/internal/wm"
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a layout as an editable document with swallow criteria",
	Long: `Save the layout of a workspace or output to stdout as a commented,
human-editable document. The swallow criteria derived from each window are
commented out; edit and uncomment the ones each placeholder should match,
then feed the file back with restore.

With no selector the focused workspace is saved.

Examples:
  i3keep save > ws1.json
  i3keep save --workspace "2: mail" > mail.json
  i3keep save --output HDMI-A-1 --archive --name docked`,
	RunE: runSave,
}

func init() {
	rootCmd.AddCommand(saveCmd)
	addSelectionFlags(saveCmd)
	saveCmd.Flags().Bool("archive", false, "Also store the document in the layout archive")
	saveCmd.Flags().String("name", "", "Archive entry name (default: the selection)")
}

func runSave(cmd *cobra.Command, args []string) error {
	workspace, outputName := getSelectionFlags(cmd)
	toArchive, _ := cmd.Flags().GetBool("archive")
	name, _ := cmd.Flags().GetString("name")

	if err := validateSelection(workspace, outputName); err != nil {
		return err
	}

	client, err := wm.Connect()
	if err != nil {
		return err
	}
	defer client.Close()

	subtree, target, err := selectSubtree(client, workspace, outputName, true)
	if err != nil {
		return err
	}

	normalized := model.Normalize(*subtree)
	leaves := model.CountLeaves(normalized)
	doc := layout.Render(normalized, layout.Options{SwallowKeys: cfg.Save.SwallowCriteria})
	log.Debug("layout rendered", "target", target, "leaves", leaves)

	fmt.Print(doc)
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		log.Info("layout text is meant to be redirected, e.g. i3keep save > layout.json")
	}

	if toArchive {
		if name == "" {
			name = target
		}
		store, err := openArchive()
		if err != nil {
			return err
		}
		defer store.Close()
		entry := archive.New(name, target, doc, leaves)
		if err := store.Save(cmd.Context(), entry); err != nil {
			return err
		}
		log.Info("layout archived", "id", entry.ID, "name", entry.Name)
	}
	return nil
}
