package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kavitarao/studyhall/internal/session"
	"github.com/kavitarao/studyhall/internal/store"
)

var startSubject string
var startMinutes int
var startTimerMode string

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Begin a new study session",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, err := openGateway()
		if err != nil {
			return err
		}
		defer gw.Close()

		if s, err := gw.LoadActive(); err != nil && !errors.Is(err, store.ErrNoSession) {
			return err
		} else if s != nil {
			return fmt.Errorf("session already in progress (started at %s)", s.StartTime.Format(time.RFC3339))
		}

		prof := GetProfile()

		subject := startSubject
		if subject == "" && prof != nil {
			subject = prof.DefaultSubject
		}
		if subject == "" {
			subject = "Study"
		}

		minutes := startMinutes
		if minutes <= 0 {
			minutes = cfg.DefaultPlanned
		}

		mode := startTimerMode
		if mode == "" {
			mode = cfg.DefaultTimerMode
		}

		s := session.New(subject, time.Duration(minutes)*time.Minute, mode)
		if err := gw.SaveSession(s); err != nil {
			return err
		}

		logger.Debug("session started",
			zap.String("id", s.ID), zap.String("subject", s.Subject))
		fmt.Printf("Session started: %s (%s, %d min planned).\n", s.Subject, s.TimerMode, minutes)
		fmt.Println("Run 'studyhall edit' to open the notebook.")
		return nil
	},
}

func init() {
	startCmd.Flags().StringVarP(&startSubject, "subject", "s", "", "Subject for this session (default: profile subject)")
	startCmd.Flags().IntVarP(&startMinutes, "minutes", "m", 0, "Planned session length in minutes")
	startCmd.Flags().StringVar(&startTimerMode, "timer", "", "Timer mode: countdown or stopwatch")
	rootCmd.AddCommand(startCmd)
}
