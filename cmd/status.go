package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/kavitarao/studyhall/internal/session"
	"github.com/kavitarao/studyhall/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active study session",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		defer gw.Close()

		s, err := gw.LoadActive()
		if err != nil {
			if errors.Is(err, store.ErrNoSession) {
				cmd.Println("no active session")
				return nil
			}
			return err
		}

		cmd.Printf("Subject: %s\n", s.Subject)
		cmd.Printf("Started: %s\n", s.StartTime.Format(time.RFC3339))
		cmd.Printf("Elapsed: %s\n", s.Elapsed())
		if s.TimerMode == session.TimerCountdown {
			cmd.Printf("Remaining: %s of %s\n", s.Remaining(), s.PlannedDuration)
		}
		cmd.Printf("Notes: %d\n", s.NoteCount())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
