// Package export renders an ended study session to a shareable file and
// parses such files back. Markdown output stays human-readable while
// embedding a base64 JSON payload for lossless round-trips.
package export

import (
	"time"

	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/session"
)

// Bundle is the complete, renderable representation of an exported session.
type Bundle struct {
	Session SessionMeta         `json:"session"`
	Tree    []*notebook.Node    `json:"tree"`
	Content notebook.ContentMap `json:"content"`
}

// SessionMeta holds summary metadata about the session for the bundle.
type SessionMeta struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  string    `json:"duration"` // human-readable, e.g. "2h15m"
	TimerMode string    `json:"timer_mode"`
	Author    string    `json:"author,omitempty"`
}

// FromSession builds a Bundle from an ended session.
func FromSession(s *session.Session, author string) *Bundle {
	meta := SessionMeta{
		ID:        s.ID,
		Subject:   s.Subject,
		StartTime: s.StartTime,
		Duration:  s.ActualDuration.String(),
		TimerMode: s.TimerMode,
		Author:    author,
	}
	if s.EndTime != nil {
		meta.EndTime = *s.EndTime
	}
	return &Bundle{
		Session: meta,
		Tree:    s.Tree,
		Content: s.Content,
	}
}
