package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kavitarao/studyhall/internal/board"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the study streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		defer gw.Close()

		history, err := gw.ListSessions()
		if err != nil {
			return err
		}

		st := board.ComputeStreak(history, time.Now())
		if st.TotalDays == 0 {
			cmd.Println("no study history yet — finish a session to start your streak")
			return nil
		}

		cmd.Printf("Current streak: %d day(s)\n", st.Current)
		cmd.Printf("Longest streak: %d day(s)\n", st.Longest)
		cmd.Printf("Days studied:   %d\n", st.TotalDays)
		cmd.Printf("Total time:     %s\n", st.TotalTime)
		cmd.Printf("Last active:    %s\n", st.LastActive.Format("2006-01-02"))

		if prof := GetProfile(); prof != nil && prof.DailyGoalMinutes > 0 {
			cmd.Printf("Daily goal:     %d min\n", prof.DailyGoalMinutes)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(streakCmd)
}
