package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kavitarao/studyhall/internal/export"
	"github.com/kavitarao/studyhall/internal/store"
)

var stopFormat string
var stopOutput string
var stopNoExport bool

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "End the active study session and export a session bundle",
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

		s.End(time.Now())
		if err := gw.ArchiveSession(s); err != nil {
			return err
		}
		logger.Debug("session archived", zap.String("id", s.ID))

		fmt.Printf("Session stopped: %s, %s, %d notes.\n",
			s.Subject, s.ActualDuration, s.NoteCount())

		if stopNoExport {
			return nil
		}

		author := ""
		if prof := GetProfile(); prof != nil {
			author = prof.Name
		}
		b := export.FromSession(s, author)

		var renderer export.BundleRenderer
		ext := ".md"
		if stopFormat == "json" {
			renderer = &export.JSONRenderer{}
			ext = ".json"
		} else {
			renderer = &export.MarkdownRenderer{}
		}

		data, err := renderer.Render(b)
		if err != nil {
			return fmt.Errorf("render bundle: %w", err)
		}

		outputPath := stopOutput
		if outputPath == "" {
			name := "studyhall-" + s.EndTime.Format("2006-01-02-150405") + ext
			outputPath = filepath.Join(".", name)
		}
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("write bundle file: %w", err)
		}

		fmt.Printf("Bundle written: %s\n", outputPath)
		return nil
	},
}

func init() {
	stopCmd.Flags().StringVar(&stopFormat, "format", "", "Bundle format: markdown or json")
	stopCmd.Flags().StringVarP(&stopOutput, "output", "o", "", "Bundle output path (default: ./studyhall-<timestamp>)")
	stopCmd.Flags().BoolVar(&stopNoExport, "no-export", false, "End the session without writing a bundle")
	rootCmd.AddCommand(stopCmd)
}
