// Package store implements the persistence gateway for studyhall sessions:
// a local durable cache on disk and a SQLite document store, both satisfying
// the same Gateway contract so the core never branches on which backend is
// active. Saves are idempotent full-state snapshots, never deltas.
package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/session"
)

// ErrNoSession is returned when no active session exists.
var ErrNoSession = errors.New("no active session")

// ErrSessionEnded is returned by mutating operations against a session that
// has already been archived as read-only history.
var ErrSessionEnded = errors.New("session has ended and is read-only")

// Gateway loads and saves sessions, trees, and content maps. Save errors are
// surfaced to the user but never block further local editing; in-memory state
// remains the source of truth.
type Gateway interface {
	// SaveSession overwrites the full session snapshot.
	SaveSession(s *session.Session) error
	// LoadActive returns the current active session, or ErrNoSession.
	LoadActive() (*session.Session, error)
	// LoadSession returns the session with the given id, active or archived,
	// or ErrNoSession if unknown.
	LoadSession(id string) (*session.Session, error)
	// ArchiveSession stores an ended session as read-only history and clears
	// the active slot.
	ArchiveSession(s *session.Session) error
	// DeleteActive discards the active session without archiving it.
	DeleteActive() error

	// LoadTree returns the last persisted tree for the session, or a freshly
	// seeded single-root-plus-one-empty-note tree if none exists.
	LoadTree(sessionID string) ([]*notebook.Node, error)
	// SaveTree overwrites the session's tree.
	SaveTree(sessionID string, roots []*notebook.Node) error
	// LoadContent returns the last persisted content map, or an empty map.
	LoadContent(sessionID string) (notebook.ContentMap, error)
	// SaveContent overwrites the session's content map.
	SaveContent(sessionID string, content notebook.ContentMap) error

	// ListSessions returns summaries of archived sessions, newest first.
	ListSessions() ([]session.Summary, error)

	Close() error
}

// SeedTree builds the default tree handed out when no persisted tree exists:
// one subject root with a single empty note, plus the matching content entry.
func SeedTree(subject string) ([]*notebook.Node, notebook.ContentMap) {
	if subject == "" {
		subject = "Untitled"
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
	return []*notebook.Node{root}, notebook.ContentMap{note.ID: ""}
}

func summarize(s *session.Session) session.Summary {
	sum := session.Summary{
		ID:        s.ID,
		Subject:   s.Subject,
		StartTime: s.StartTime,
		Duration:  s.ActualDuration,
		NoteCount: s.NoteCount(),
	}
	if s.EndTime != nil {
		sum.EndTime = *s.EndTime
	}
	return sum
}
