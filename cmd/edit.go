package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/store"
	"github.com/kavitarao/studyhall/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the notebook editor for the active session",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		defer gw.Close()

		s, err := gw.LoadActive()
		if err != nil {
			if errors.Is(err, store.ErrNoSession) {
				return fmt.Errorf("no active session — run 'studyhall start' first")
			}
			return err
		}

		if s.Ended() {
			return fmt.Errorf("session has ended — use 'studyhall view' to read it")
		}
		if err := notebook.Validate(s.Tree); err != nil {
			return fmt.Errorf("stored notebook is invalid: %w", err)
		}

		mgr := notebook.NewManager(s.Tree, s.Content)
		return tui.RunEditor(mgr, s, gw, cfg.Debounce())
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
