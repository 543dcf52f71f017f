package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/store"
)

var noteCmd = &cobra.Command{
	Use:   "note <text>",
	Short: "Append a line to the active session's first note without opening the editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		defer gw.Close()

		s, err := gw.LoadActive()
		if err != nil {
			if errors.Is(err, store.ErrNoSession) {
				return fmt.Errorf("no active session")
			}
			return err
		}

		mgr := notebook.NewManager(s.Tree, s.Content)
		target, ok := mgr.FindFirstNote()
		if !ok {
			return fmt.Errorf("session has no note to append to")
		}
		line := args[0]
		if strings.TrimSpace(mgr.Content()[target.ID]) != "" {
			line = "\n" + line
		}
		mgr.AppendToNote(target.ID, line)

		s.Tree = mgr.Roots()
		s.Content = mgr.Content()
		if err := gw.SaveSession(s); err != nil {
			return err
		}

		fmt.Printf("Note added to %q.\n", target.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
