// Package notify defines the toast side channel: a small injected port so
// core packages can surface transient user-visible messages without depending
// on any UI framework.
package notify

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Kind classifies a notification.
type Kind string

const (
	Info  Kind = "info"
	Warn  Kind = "warn"
	Error Kind = "error"
)

// Func receives a notification. Implementations must be non-blocking from
// the caller's perspective; persistence and AI failures are reported through
// this channel and never interrupt editing.
type Func func(kind Kind, message string)

// Discard drops all notifications. Useful default for tests.
func Discard(Kind, string) {}

var (
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Writer returns a Func that prints styled one-line toasts to w.
func Writer(w io.Writer) Func {
	return func(kind Kind, message string) {
		switch kind {
		case Warn:
			fmt.Fprintln(w, warnStyle.Render("warning: ")+message)
		case Error:
			fmt.Fprintln(w, errStyle.Render("error: ")+message)
		default:
			fmt.Fprintln(w, infoStyle.Render("• ")+message)
		}
	}
}
