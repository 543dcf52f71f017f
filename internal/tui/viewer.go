// Package tui provides the Bubble Tea editor and read-only viewer for
// studyhall sessions.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/kavitarao/studyhall/internal/notebook"
)

// ViewerData is the snapshot a viewer displays: session metadata plus a
// read-only notebook.
type ViewerData struct {
	Subject   string
	StartTime time.Time
	EndTime   time.Time // zero while the session is still active
	Duration  string
	TimerMode string
	Notebook  *notebook.ReadOnly
}

// ── Tab definitions ─────────────────

type viewerTab int

const (
	tabNotebook viewerTab = iota
	tabNote
	tabSession
	viewerTabCount
)

var viewerTabNames = [viewerTabCount]string{"Notebook", "Note", "Session"}

type reloadMsg struct{}

// ViewerModel is the root Bubble Tea model for the read-only viewer.
type ViewerModel struct {
	data      *ViewerData
	load      func() (*ViewerData, error)
	changes   <-chan struct{}
	activeTab viewerTab
	rows      []treeRow
	cursor    int
	noteVP    viewport.Model
	sessionVP viewport.Model
	width     int
	height    int
	ready     bool
	loadErr   string
}

// NewViewer creates a viewer model. load re-reads the snapshot and is invoked
// whenever changes delivers a signal (a concurrent editor elsewhere may keep
// writing; the viewer catches up by reloading).
// changes may be nil for static data such as exported bundles.
func NewViewer(data *ViewerData, load func() (*ViewerData, error), changes <-chan struct{}) ViewerModel {
	m := ViewerModel{
		data:    data,
		load:    load,
		changes: changes,
	}
	m.rows = flattenTree(data.Notebook.Roots())
	// Open on the first note, matching the editor's initial selection.
	if first, ok := data.Notebook.FindFirstNote(); ok {
		data.Notebook.SelectNode(first.ID)
		m.cursor = rowIndex(m.rows, first.ID)
	}
	return m
}

// waitForChange blocks until the watcher reports a write to the session file.
func (m ViewerModel) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return reloadMsg{}
	}
}

// ── Bubble Tea interface ───────────────

func (m ViewerModel) Init() tea.Cmd { return m.waitForChange() }

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab", "l", "right":
			m.activeTab = (m.activeTab + 1) % viewerTabCount
		case "shift+tab", "h", "left":
			m.activeTab = (m.activeTab - 1 + viewerTabCount) % viewerTabCount
		case "1", "2", "3":
			m.activeTab = viewerTab(msg.String()[0] - '1')
		case "up", "k":
			if m.activeTab == tabNotebook && m.cursor > 0 {
				m.cursor--
				return m, nil
			}
		case "down", "j":
			if m.activeTab == tabNotebook && m.cursor < len(m.rows)-1 {
				m.cursor++
				return m, nil
			}
		case "enter", " ":
			if m.activeTab == tabNotebook && len(m.rows) > 0 {
				row := m.rows[m.cursor]
				m.data.Notebook.SelectNode(row.node.ID)
				m.rebuildNoteViewport()
				if row.node.Type == notebook.TypeNote {
					m.activeTab = tabNote
				}
				return m, nil
			}
		}
		if m.activeTab == tabNote {
			var cmd tea.Cmd
			m.noteVP, cmd = m.noteVP.Update(msg)
			return m, cmd
		}
		if m.activeTab == tabSession {
			var cmd tea.Cmd
			m.sessionVP, cmd = m.sessionVP.Update(msg)
			return m, cmd
		}
		return m, nil

	case reloadMsg:
		data, err := m.load()
		if err != nil {
			m.loadErr = err.Error()
			return m, m.waitForChange()
		}
		// Preserve the selection across reloads when the node survives.
		prevActive := m.data.Notebook.ActiveID()
		m.data = data
		m.loadErr = ""
		m.rows = flattenTree(data.Notebook.Roots())
		if _, ok := data.Notebook.FindNode(prevActive); ok {
			data.Notebook.SelectNode(prevActive)
			m.cursor = rowIndex(m.rows, prevActive)
		} else if first, ok := data.Notebook.FindFirstNote(); ok {
			data.Notebook.SelectNode(first.ID)
			m.cursor = rowIndex(m.rows, first.ID)
		} else if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.ready {
			m.rebuildNoteViewport()
			m.sessionVP.SetContent(m.renderSession())
		}
		return m, m.waitForChange()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewports()
		return m, nil
	}
	return m, nil
}

func (m ViewerModel) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  studyhall  " + m.data.Subject + "  (read-only)")

	var tabParts []string
	for i := viewerTab(0); i < viewerTabCount; i++ {
		label := fmt.Sprintf(" %d %s ", i+1, viewerTabNames[i])
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < viewerTabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	var content string
	switch m.activeTab {
	case tabNotebook:
		content = m.renderNotebook()
	case tabNote:
		content = m.noteVP.View()
	case tabSession:
		content = m.sessionVP.View()
	}

	hint := "  ←/→ tab  ↑/↓ move  enter open note  q quit"
	if m.loadErr != "" {
		hint = "  " + toastErrStyle.Render("reload failed: "+m.loadErr)
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, content, statusBar)
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *ViewerModel) initViewports() {
	vpHeight := m.height - 3
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.noteVP = viewport.New(m.width, vpHeight)
	m.sessionVP = viewport.New(m.width, vpHeight)
	m.rebuildNoteViewport()
	m.sessionVP.SetContent(m.renderSession())
}

func (m *ViewerModel) rebuildNoteViewport() {
	m.noteVP.SetContent(m.renderNote())
	m.noteVP.GotoTop()
}

// ── Pane renderers ────────────────────────────────────────────────────────────

func (m *ViewerModel) renderNotebook() string {
	var sb strings.Builder
	sb.WriteString("\n" + sectionHeader.Render("  Notebook") + "\n\n")
	activeID := m.data.Notebook.ActiveID()
	for i, r := range m.rows {
		sb.WriteString(renderRow(r, i == m.cursor, r.node.ID == activeID) + "\n")
	}

	// Pad to the viewport height so the status bar stays put.
	lines := strings.Count(sb.String(), "\n")
	for lines < m.height-3 {
		sb.WriteString("\n")
		lines++
	}
	return sb.String()
}

func (m *ViewerModel) renderNote() string {
	id := m.data.Notebook.ActiveID()
	n, ok := m.data.Notebook.FindNode(id)
	if !ok || n.Type != notebook.TypeNote {
		return "\n" + dimStyle.Render("  Select a note to view its content.") + "\n"
	}

	var sb strings.Builder
	sb.WriteString("\n" + sectionHeader.Render("  "+n.Name) + "\n\n")
	body := m.data.Notebook.NoteContent(n.ID)
	if strings.TrimSpace(body) == "" {
		sb.WriteString(dimStyle.Render("  (empty note)") + "\n")
	} else {
		for _, line := range strings.Split(body, "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

func (m *ViewerModel) renderSession() string {
	var sb strings.Builder
	sb.WriteString("\n" + sectionHeader.Render("  Session") + "\n\n")

	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-12s", label)) + "  " + value + "\n")
	}
	row("Subject", m.data.Subject)
	row("Started", timeStyle.Render(m.data.StartTime.Format("2006-01-02 15:04:05")))
	if m.data.EndTime.IsZero() {
		row("Status", "active")
	} else {
		row("Ended", timeStyle.Render(m.data.EndTime.Format("2006-01-02 15:04:05")))
	}
	row("Duration", m.data.Duration)
	row("Timer", m.data.TimerMode)
	return sb.String()
}

// RunViewer opens the read-only viewer. When watchPath is non-empty, an
// fsnotify watcher on its directory triggers a reload whenever the file is
// rewritten, so a viewer left open tracks an editor running elsewhere.
func RunViewer(data *ViewerData, load func() (*ViewerData, error), watchPath string) error {
	var changes chan struct{}
	var watcher *fsnotify.Watcher

	if watchPath != "" {
		var err error
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		// Watch the directory: saves go through temp-file + rename, which
		// would drop a watch registered on the file itself.
		if err := watcher.Add(filepath.Dir(watchPath)); err != nil {
			return err
		}

		changes = make(chan struct{}, 1)
		go func() {
			defer close(changes)
			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}
					if event.Name != watchPath {
						continue
					}
					if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
						select {
						case changes <- struct{}{}:
						default: // a reload is already pending
						}
					}
				case _, ok := <-watcher.Errors:
					if !ok {
						return
					}
					// Watcher errors are non-fatal; continue watching.
				}
			}
		}()
	}

	m := NewViewer(data, load, changes)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
