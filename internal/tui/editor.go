package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/notify"
	"github.com/kavitarao/studyhall/internal/session"
	"github.com/kavitarao/studyhall/internal/store"
)

type editorMode int

const (
	modeTree   editorMode = iota // navigating the tree pane
	modeEdit                     // typing in the note pane
	modeAdd                      // naming a new child node
	modeRename                   // renaming the node under the cursor
)

type saveMsg struct{}
type tickMsg time.Time

// EditorModel is the interactive session editor: a tree pane on the left and
// the active note's edit buffer on the right. Every mutation arms the
// debounced save; quitting flushes immediately.
type EditorModel struct {
	mgr  *notebook.Manager
	sess *session.Session
	gw   store.Gateway
	deb  *store.Debouncer

	saveCh chan struct{}

	rows    []treeRow
	cursor  int
	mode    editorMode
	addType notebook.NodeType

	ta    textarea.Model
	input textinput.Model

	toast     string
	toastKind notify.Kind

	width  int
	height int
	ready  bool
}

// NewEditor builds the editor for an active session. The manager wraps the
// session's tree and content; the gateway receives debounced full-state
// snapshots.
func NewEditor(mgr *notebook.Manager, sess *session.Session, gw store.Gateway, debounce time.Duration) *EditorModel {
	ta := textarea.New()
	ta.Placeholder = "Start taking notes…"
	ta.CharLimit = 0

	input := textinput.New()
	input.CharLimit = 120

	m := &EditorModel{
		mgr:    mgr,
		sess:   sess,
		gw:     gw,
		saveCh: make(chan struct{}, 1),
		rows:   flattenTree(mgr.Roots()),
		ta:     ta,
		input:  input,
	}
	// Debounced saves fire on the timer goroutine; hand them back to the
	// update loop through a channel so all state stays single-threaded.
	m.deb = store.NewDebouncer(debounce, func() {
		select {
		case m.saveCh <- struct{}{}:
		default: // a save is already pending
		}
	})

	if first, ok := mgr.FindFirstNote(); ok {
		mgr.SelectNode(first.ID)
		m.cursor = rowIndex(m.rows, first.ID)
		m.ta.SetValue(mgr.Buffer())
	}
	return m
}

func (m *EditorModel) waitSave() tea.Cmd {
	return func() tea.Msg {
		<-m.saveCh
		return saveMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *EditorModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitSave(), tick())
}

// persist writes the full session snapshot through the gateway. Failures are
// shown as a toast but never block editing; in-memory state stays
// authoritative and the next mutation retries.
func (m *EditorModel) persist() {
	m.mgr.FlushBuffer()
	m.sess.Tree = m.mgr.Roots()
	m.sess.Content = m.mgr.Content()
	if err := m.gw.SaveSession(m.sess); err != nil {
		m.showToast(notify.Warn, "save failed — changes kept locally: "+err.Error())
	}
}

func (m *EditorModel) showToast(kind notify.Kind, msg string) {
	m.toast = msg
	m.toastKind = kind
}

func (m *EditorModel) refreshRows() {
	m.rows = flattenTree(m.mgr.Roots())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveMsg:
		m.persist()
		return m, m.waitSave()

	case tickMsg:
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizePanes()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeEdit:
			return m.updateEditMode(msg)
		case modeAdd, modeRename:
			return m.updateInputMode(msg)
		default:
			return m.updateTreeMode(msg)
		}
	}
	return m, nil
}

func (m *EditorModel) updateTreeMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		// Teardown: force an immediate flush rather than waiting out the
		// debounce window.
		m.deb.Stop()
		m.persist()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "enter":
		if len(m.rows) == 0 {
			return m, nil
		}
		row := m.rows[m.cursor]
		m.mgr.SelectNode(row.node.ID)
		if row.node.Type == notebook.TypeNote {
			m.ta.SetValue(m.mgr.Buffer())
			m.mode = modeEdit
			m.ta.Focus()
			return m, textarea.Blink
		}

	case "a", "T", "S":
		if len(m.rows) == 0 {
			return m, nil
		}
		switch msg.String() {
		case "a":
			m.addType = notebook.TypeNote
		case "T":
			m.addType = notebook.TypeTitle
		case "S":
			m.addType = notebook.TypeSubheading
		}
		m.input.SetValue("")
		m.input.Placeholder = fmt.Sprintf("New %s name", m.addType)
		m.input.Focus()
		m.mode = modeAdd
		return m, textinput.Blink

	case "r":
		if len(m.rows) == 0 {
			return m, nil
		}
		m.input.SetValue(m.rows[m.cursor].node.Name)
		m.input.Placeholder = "New name"
		m.input.Focus()
		m.mode = modeRename
		return m, textinput.Blink

	case "d":
		if len(m.rows) == 0 {
			return m, nil
		}
		row := m.rows[m.cursor]
		if err := m.mgr.DeleteNode(row.node.ID); err != nil {
			m.showToast(notify.Error, err.Error())
			return m, nil
		}
		m.refreshRows()
		// The active node may have been inside the deleted subtree;
		// fall back to the first remaining note.
		if m.mgr.ActiveID() == "" {
			if first, ok := m.mgr.FindFirstNote(); ok {
				m.mgr.SelectNode(first.ID)
			}
		}
		m.ta.SetValue(m.mgr.Buffer())
		m.deb.Trigger()
		m.showToast(notify.Info, "deleted "+row.node.Name)
	}
	return m, nil
}

func (m *EditorModel) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mgr.SetBuffer(m.ta.Value())
		m.ta.Blur()
		m.mode = modeTree
		return m, nil
	case "ctrl+c":
		m.mgr.SetBuffer(m.ta.Value())
		m.deb.Stop()
		m.persist()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	m.mgr.SetBuffer(m.ta.Value())
	m.deb.Trigger()
	return m, cmd
}

func (m *EditorModel) updateInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.mode = modeTree
		return m, nil

	case "enter":
		name := m.input.Value()
		m.input.Blur()
		row := m.rows[m.cursor]

		if m.mode == modeRename {
			if !m.mgr.RenameNode(row.node.ID, name) {
				// Blank rename is a silent no-op: the node keeps its name.
				m.mode = modeTree
				return m, nil
			}
			m.refreshRows()
			m.deb.Trigger()
			m.mode = modeTree
			return m, nil
		}

		id, err := m.mgr.AddNode(row.node.ID, m.addType, name)
		if err != nil {
			m.showToast(notify.Error, err.Error())
			m.mode = modeTree
			return m, nil
		}
		m.refreshRows()
		m.cursor = rowIndex(m.rows, id)
		if m.addType == notebook.TypeNote {
			m.mgr.SelectNode(id)
			m.ta.SetValue(m.mgr.Buffer())
		}
		m.deb.Trigger()
		m.mode = modeTree
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ── Layout ────────────────────────────────────────────────────────────────────

func (m *EditorModel) treeWidth() int {
	w := m.width * 2 / 5
	if w < 24 {
		w = 24
	}
	return w
}

func (m *EditorModel) resizePanes() {
	paneHeight := m.height - 2 // title + status bar
	if paneHeight < 1 {
		paneHeight = 1
	}
	m.ta.SetWidth(m.width - m.treeWidth() - 2)
	m.ta.SetHeight(paneHeight - 2)
	m.input.Width = m.treeWidth() - 4
}

func (m *EditorModel) View() string {
	if !m.ready {
		return "Loading…"
	}

	timer := m.sess.Elapsed().String()
	if m.sess.TimerMode == session.TimerCountdown {
		timer = m.sess.Remaining().String() + " left"
	}
	title := titleStyle.Width(m.width).Render(
		fmt.Sprintf("  studyhall  %s  ·  %s", m.sess.Subject, timer))

	paneHeight := m.height - 2
	if paneHeight < 1 {
		paneHeight = 1
	}

	tree := m.renderTreePane(paneHeight)
	note := m.renderNotePane()
	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, note)

	var hint string
	switch m.mode {
	case modeEdit:
		hint = "  esc back to tree  ctrl+c save & quit"
	case modeAdd, modeRename:
		hint = "  enter confirm  esc cancel"
	default:
		hint = "  ↑/↓ move  enter open  a note  T title  S subheading  r rename  d delete  q quit"
	}
	if m.toast != "" {
		switch m.toastKind {
		case notify.Error:
			hint = "  " + toastErrStyle.Render(m.toast)
		case notify.Warn:
			hint = "  " + toastWarnStyle.Render(m.toast)
		default:
			hint = "  " + toastInfoStyle.Render(m.toast)
		}
		m.toast = ""
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint)

	return lipgloss.JoinVertical(lipgloss.Left, title, body, statusBar)
}

func (m *EditorModel) renderTreePane(height int) string {
	var sb strings.Builder
	sb.WriteString("\n")
	activeID := m.mgr.ActiveID()
	for i, r := range m.rows {
		sb.WriteString(renderRow(r, i == m.cursor && m.mode != modeEdit, r.node.ID == activeID) + "\n")
	}
	if m.mode == modeAdd || m.mode == modeRename {
		sb.WriteString("\n  " + m.input.View() + "\n")
	}

	return lipgloss.NewStyle().
		Width(m.treeWidth()).
		Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(lipgloss.Color("238")).
		Render(sb.String())
}

func (m *EditorModel) renderNotePane() string {
	n, ok := m.mgr.FindNode(m.mgr.ActiveID())
	if !ok || n.Type != notebook.TypeNote {
		return "\n\n" + dimStyle.Render("  Select a note to view its content.")
	}
	header := "\n " + sectionHeader.Render(" "+n.Name) + "\n"
	if m.mode == modeEdit {
		return header + m.ta.View()
	}
	// Read-only preview while navigating the tree.
	var sb strings.Builder
	sb.WriteString(header)
	body := m.mgr.Buffer()
	if strings.TrimSpace(body) == "" {
		sb.WriteString(dimStyle.Render("  (empty note — press enter to edit)"))
	} else {
		for _, line := range strings.Split(body, "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}
	return sb.String()
}

// RunEditor opens the interactive editor for an active session.
func RunEditor(mgr *notebook.Manager, sess *session.Session, gw store.Gateway, debounce time.Duration) error {
	m := NewEditor(mgr, sess, gw, debounce)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
