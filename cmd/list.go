package cmd

import (
	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List past study sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		defer gw.Close()

		sums, err := gw.ListSessions()
		if err != nil {
			return err
		}
		if len(sums) == 0 {
			cmd.Println("no past sessions")
			return nil
		}
		if listLimit > 0 && len(sums) > listLimit {
			sums = sums[:listLimit]
		}

		for _, s := range sums {
			cmd.Printf("%s  %-20s  %-9s  %d notes  %s\n",
				s.EndTime.Format("2006-01-02 15:04"),
				s.Subject,
				s.Duration,
				s.NoteCount,
				s.ID,
			)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Show at most this many sessions")
	rootCmd.AddCommand(listCmd)
}
