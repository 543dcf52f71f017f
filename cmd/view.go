package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kavitarao/studyhall/internal/export"
	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/session"
	"github.com/kavitarao/studyhall/internal/store"
	"github.com/kavitarao/studyhall/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "View the active session live, or an exported bundle file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return viewBundle(args[0])
		}
		return viewActive()
	},
}

// viewActive opens the read-only viewer on the active session. With the local
// backend the session file is watched, so an editor running in another
// terminal shows up live.
func viewActive() error {
	gw, err := openGateway()
	if err != nil {
		return err
	}
	defer gw.Close()

	load := func() (*tui.ViewerData, error) {
		s, err := gw.LoadActive()
		if err != nil {
			return nil, err
		}
		return sessionViewerData(s), nil
	}

	data, err := load()
	if err != nil {
		if errors.Is(err, store.ErrNoSession) {
			return fmt.Errorf("no active session — run 'studyhall start' first")
		}
		return err
	}

	watchPath := ""
	if ds, ok := gw.(*store.DiskStore); ok {
		watchPath = ds.ActivePath()
	}
	return tui.RunViewer(data, load, watchPath)
}

// viewBundle opens the viewer on an exported bundle file. The snapshot is
// static, so no watcher is attached.
func viewBundle(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
		return err
	}

	var parser export.BundleParser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		parser = &export.JSONParser{}
	default:
		parser = &export.MarkdownParser{}
	}

	b, err := parser.Parse(data)
	if err != nil {
		return err
	}
	if err := notebook.Validate(b.Tree); err != nil {
		return fmt.Errorf("bundle notebook is invalid: %w", err)
	}

	vd := &tui.ViewerData{
		Subject:   b.Session.Subject,
		StartTime: b.Session.StartTime,
		EndTime:   b.Session.EndTime,
		Duration:  b.Session.Duration,
		TimerMode: b.Session.TimerMode,
		Notebook:  notebook.NewReadOnly(b.Tree, b.Content),
	}
	return tui.RunViewer(vd, nil, "")
}

func sessionViewerData(s *session.Session) *tui.ViewerData {
	vd := &tui.ViewerData{
		Subject:   s.Subject,
		StartTime: s.StartTime,
		Duration:  s.Elapsed().String(),
		TimerMode: s.TimerMode,
		Notebook:  notebook.NewReadOnly(s.Tree, s.Content),
	}
	if s.EndTime != nil {
		vd.EndTime = *s.EndTime
	}
	return vd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
