// Package session defines the study-session model: one timed study period
// owning exactly one notebook tree and content map plus scalar metadata.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/kavitarao/studyhall/internal/notebook"
)

// Timer modes for a session.
const (
	TimerCountdown = "countdown" // count down from the planned duration
	TimerStopwatch = "stopwatch" // count up until stopped
)

// Session represents an active or ended study session. The tree and content
// map are mutated only while the session is active; once ended, both are
// persisted in a final state and treated as read-only history.
type Session struct {
	ID              string              `json:"id"`
	Subject         string              `json:"subject"`
	StartTime       time.Time           `json:"start_time"`
	EndTime         *time.Time          `json:"end_time,omitempty"`
	PlannedDuration time.Duration       `json:"planned_duration"`
	ActualDuration  time.Duration       `json:"actual_duration"`
	TimerMode       string              `json:"timer_mode"`
	Tree            []*notebook.Node    `json:"tree"`
	Content         notebook.ContentMap `json:"content"`
}

// New creates a session seeded with a default tree: one subject root plus one
// empty note, with a matching content entry. The tree and content map are
// created together so the editor always has a note to select.
func New(subject string, planned time.Duration, timerMode string) *Session {
	if timerMode != TimerCountdown {
		timerMode = TimerStopwatch
	}
	root := &notebook.Node{
		ID:   uuid.New().String(),
		Name: subject,
		Type: notebook.TypeSubject,
	}
	note := &notebook.Node{
		ID:       uuid.New().String(),
		Name:     "Session Note",
		Type:     notebook.TypeNote,
		ParentID: root.ID,
	}
	root.Children = []*notebook.Node{note}

	return &Session{
		ID:              uuid.New().String(),
		Subject:         subject,
		StartTime:       time.Now(),
		PlannedDuration: planned,
		TimerMode:       timerMode,
		Tree:            []*notebook.Node{root},
		Content:         notebook.ContentMap{note.ID: ""},
	}
}

// Ended reports whether the session has been stopped.
func (s *Session) Ended() bool { return s.EndTime != nil }

// End marks the session as ended at the given time and records the actual
// duration. No-op if already ended.
func (s *Session) End(at time.Time) {
	if s.Ended() {
		return
	}
	s.EndTime = &at
	s.ActualDuration = at.Sub(s.StartTime).Round(time.Second)
}

// Elapsed returns how long the session has been running (or ran, if ended).
func (s *Session) Elapsed() time.Duration {
	if s.Ended() {
		return s.ActualDuration
	}
	return time.Since(s.StartTime).Round(time.Second)
}

// Remaining returns the time left on a countdown session, clamped at zero.
// Always zero for stopwatch sessions.
func (s *Session) Remaining() time.Duration {
	if s.TimerMode != TimerCountdown {
		return 0
	}
	left := s.PlannedDuration - s.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// NoteCount returns the number of note nodes in the session tree.
func (s *Session) NoteCount() int {
	var count func(nodes []*notebook.Node) int
	count = func(nodes []*notebook.Node) int {
		total := 0
		for _, n := range nodes {
			if n.Type == notebook.TypeNote {
				total++
			}
			total += count(n.Children)
		}
		return total
	}
	return count(s.Tree)
}

// Summary is the listing form of an ended session, used by history views and
// streak computation.
type Summary struct {
	ID        string        `json:"id"`
	Subject   string        `json:"subject"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	NoteCount int           `json:"note_count"`
}
