package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/i3keep/i3keep/internal/output"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the local layout archive",
	Long: `List, show and delete layouts stored with save --archive. IDs may be
abbreviated to a unique prefix; unambiguous names work too.`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived layouts",
	RunE:  runArchiveList,
}

var archiveShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print an archived layout document",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

var archiveRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete an archived layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveRm,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveRmCmd)
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	layouts, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	return output.Print(layouts)
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	l, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Print(l.Body)
	return nil
}

func runArchiveRm(cmd *cobra.Command, args []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	l, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := store.Delete(cmd.Context(), l.ID); err != nil {
		return err
	}
	log.Info("archived layout removed", "id", l.ID, "name", l.Name)
	return nil
}
