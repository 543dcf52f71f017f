package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/session"
)

// DocumentStore is the hosted-document-store backend of the gateway, backed
// by SQLite. Each session is one row with the tree and content map stored as
// JSON documents; saves are whole-row upserts, so writing the same snapshot
// twice is indistinguishable from writing it once.
type DocumentStore struct {
	db *sql.DB
}

// OpenDocumentStore opens (or creates) the SQLite database at path with WAL
// enabled and bootstraps the schema.
func OpenDocumentStore(path string) (*DocumentStore, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id              TEXT PRIMARY KEY,
			subject         TEXT NOT NULL,
			start_time      INTEGER NOT NULL,
			end_time        INTEGER,
			planned_seconds INTEGER NOT NULL,
			actual_seconds  INTEGER NOT NULL,
			timer_mode      TEXT NOT NULL,
			tree            TEXT NOT NULL,
			content         TEXT NOT NULL,
			active          INTEGER NOT NULL DEFAULT 0
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}

	return &DocumentStore{db: db}, nil
}

// DB exposes the underlying handle so sibling stores (the dashboard board)
// can share the same database file.
func (ds *DocumentStore) DB() *sql.DB { return ds.db }

// Close closes the database connection.
func (ds *DocumentStore) Close() error { return ds.db.Close() }

// upsert writes the full session snapshot as one row.
func (ds *DocumentStore) upsert(s *session.Session, active bool) error {
	treeJSON, err := json.Marshal(s.Tree)
	if err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}
	contentJSON, err := json.Marshal(s.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	var endTime sql.NullInt64
	if s.EndTime != nil {
		endTime = sql.NullInt64{Int64: s.EndTime.Unix(), Valid: true}
	}
	activeFlag := 0
	if active {
		activeFlag = 1
	}

	_, err = ds.db.Exec(`
		INSERT INTO sessions (id, subject, start_time, end_time, planned_seconds, actual_seconds, timer_mode, tree, content, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			planned_seconds = excluded.planned_seconds,
			actual_seconds = excluded.actual_seconds,
			timer_mode = excluded.timer_mode,
			tree = excluded.tree,
			content = excluded.content,
			active = excluded.active
	`, s.ID, s.Subject, s.StartTime.Unix(), endTime,
		int64(s.PlannedDuration.Seconds()), int64(s.ActualDuration.Seconds()),
		s.TimerMode, string(treeJSON), string(contentJSON), activeFlag)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func scanSession(row interface{ Scan(...any) error }) (*session.Session, error) {
	var (
		s               session.Session
		startTime       int64
		endTime         sql.NullInt64
		planned, actual int64
		treeJSON        string
		contentJSON     string
	)
	if err := row.Scan(&s.ID, &s.Subject, &startTime, &endTime, &planned, &actual,
		&s.TimerMode, &treeJSON, &contentJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	s.StartTime = time.Unix(startTime, 0)
	if endTime.Valid {
		t := time.Unix(endTime.Int64, 0)
		s.EndTime = &t
	}
	s.PlannedDuration = time.Duration(planned) * time.Second
	s.ActualDuration = time.Duration(actual) * time.Second
	if err := json.Unmarshal([]byte(treeJSON), &s.Tree); err != nil {
		return nil, fmt.Errorf("parse tree document: %w", err)
	}
	if err := json.Unmarshal([]byte(contentJSON), &s.Content); err != nil {
		return nil, fmt.Errorf("parse content document: %w", err)
	}
	return &s, nil
}

const sessionColumns = `id, subject, start_time, end_time, planned_seconds, actual_seconds, timer_mode, tree, content`

// SaveSession overwrites the session snapshot, keeping it in the active slot.
func (ds *DocumentStore) SaveSession(s *session.Session) error {
	return ds.upsert(s, !s.Ended())
}

// LoadActive returns the current active session, or ErrNoSession.
func (ds *DocumentStore) LoadActive() (*session.Session, error) {
	row := ds.db.QueryRow(`
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE active = 1
		ORDER BY start_time DESC
		LIMIT 1
	`)
	return scanSession(row)
}

// LoadSession returns the session with the given id, active or archived.
func (ds *DocumentStore) LoadSession(id string) (*session.Session, error) {
	row := ds.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil, fmt.Errorf("%w: %s", ErrNoSession, id)
		}
		return nil, err
	}
	return s, nil
}

// ArchiveSession stores the ended session as history and clears the active
// flag.
func (ds *DocumentStore) ArchiveSession(s *session.Session) error {
	if !s.Ended() {
		return fmt.Errorf("cannot archive a session that has not ended")
	}
	return ds.upsert(s, false)
}

// DeleteActive discards the active session row.
func (ds *DocumentStore) DeleteActive() error {
	if _, err := ds.db.Exec(`DELETE FROM sessions WHERE active = 1`); err != nil {
		return fmt.Errorf("delete active session: %w", err)
	}
	return nil
}

// LoadTree returns the session's persisted tree, or a fresh default seed.
func (ds *DocumentStore) LoadTree(sessionID string) ([]*notebook.Node, error) {
	s, err := ds.LoadSession(sessionID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			roots, _ := SeedTree("")
			return roots, nil
		}
		return nil, err
	}
	if len(s.Tree) == 0 {
		roots, _ := SeedTree(s.Subject)
		return roots, nil
	}
	return s.Tree, nil
}

// SaveTree overwrites the session's tree document.
func (ds *DocumentStore) SaveTree(sessionID string, roots []*notebook.Node) error {
	treeJSON, err := json.Marshal(roots)
	if err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}
	res, err := ds.db.Exec(`UPDATE sessions SET tree = ? WHERE id = ?`, string(treeJSON), sessionID)
	if err != nil {
		return fmt.Errorf("save tree: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSession, sessionID)
	}
	return nil
}

// LoadContent returns the session's persisted content map, or an empty map.
func (ds *DocumentStore) LoadContent(sessionID string) (notebook.ContentMap, error) {
	s, err := ds.LoadSession(sessionID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return notebook.ContentMap{}, nil
		}
		return nil, err
	}
	if s.Content == nil {
		return notebook.ContentMap{}, nil
	}
	return s.Content, nil
}

// SaveContent overwrites the session's content document.
func (ds *DocumentStore) SaveContent(sessionID string, content notebook.ContentMap) error {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	res, err := ds.db.Exec(`UPDATE sessions SET content = ? WHERE id = ?`, string(contentJSON), sessionID)
	if err != nil {
		return fmt.Errorf("save content: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSession, sessionID)
	}
	return nil
}

// ListSessions returns summaries of ended sessions, newest first.
func (ds *DocumentStore) ListSessions() ([]session.Summary, error) {
	rows, err := ds.db.Query(`
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE active = 0 AND end_time IS NOT NULL
		ORDER BY end_time DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sums []session.Summary
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sums = append(sums, summarize(s))
	}
	return sums, rows.Err()
}
