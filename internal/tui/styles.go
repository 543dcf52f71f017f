package tui

import "github.com/charmbracelet/lipgloss"

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	// Active tab: bright, underlined
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	// Inactive tab: muted
	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	// Separator between tabs
	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	// Section heading inside a pane
	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	// Key=value label
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	// Node-type markers in the tree pane
	subjectStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	containerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	noteStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	activeNodeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("237"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	toastInfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	toastWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	toastErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// marker returns the glyph shown before a node name in the tree pane.
func marker(isNote bool) string {
	if isNote {
		return "📝"
	}
	return "▸"
}
