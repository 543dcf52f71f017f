package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var deadlineCmd = &cobra.Command{
	Use:   "deadline",
	Short: "Manage dashboard deadlines",
}

var deadlineAddCmd = &cobra.Command{
	Use:   "add <title> <due>",
	Short: "Add a deadline (due: 2006-01-02 or \"2006-01-02 15:04\")",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		due, err := parseDue(args[1])
		if err != nil {
			return err
		}

		b, doc, err := openBoard()
		if err != nil {
			return err
		}
		defer doc.Close()

		id, err := b.AddDeadline(args[0], due)
		if err != nil {
			return err
		}
		fmt.Printf("Added deadline %s, due %s.\n", shortID(id), due.Format("2006-01-02 15:04"))
		return nil
	},
}

var deadlineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming deadlines, soonest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, doc, err := openBoard()
		if err != nil {
			return err
		}
		defer doc.Close()

		deadlines, err := b.Deadlines(time.Now())
		if err != nil {
			return err
		}
		if len(deadlines) == 0 {
			cmd.Println("no upcoming deadlines")
			return nil
		}
		for _, d := range deadlines {
			left := time.Until(d.DueAt).Round(time.Minute)
			cmd.Printf("%s  %-30s  in %s\n", d.DueAt.Format("2006-01-02 15:04"), d.Title, left)
		}
		return nil
	},
}

// parseDue accepts a date or a date with time, interpreted in local time.
// A bare date means end of that day.
func parseDue(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse due date %q (use 2006-01-02 or \"2006-01-02 15:04\")", s)
	}
	return t.Add(24*time.Hour - time.Minute), nil
}

func init() {
	deadlineCmd.AddCommand(deadlineAddCmd, deadlineListCmd)
	rootCmd.AddCommand(deadlineCmd)
}
