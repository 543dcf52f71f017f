// Package board holds the dashboard data: to-dos, deadlines, saved links,
// and the study streak. Everything lives beside the sessions in the SQLite
// document store.
package board

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Todo is one dashboard to-do item.
type Todo struct {
	ID        string
	Text      string
	Done      bool
	CreatedAt time.Time
}

// Deadline is an upcoming due date shown on the dashboard.
type Deadline struct {
	ID        string
	Title     string
	DueAt     time.Time
	CreatedAt time.Time
}

// SavedLink is a URL the user saved for later.
type SavedLink struct {
	ID        string
	URL       string
	Title     string
	CreatedAt time.Time
}

// Board provides dashboard storage over a shared SQLite handle.
type Board struct {
	db *sql.DB
}

// New bootstraps the dashboard tables on db and returns a Board.
func New(db *sql.DB) (*Board, error) {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS todos (
			id         TEXT PRIMARY KEY,
			text       TEXT NOT NULL,
			done       INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS deadlines (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			due_at     INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS links (
			id         TEXT PRIMARY KEY,
			url        TEXT NOT NULL,
			title      TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
	`); err != nil {
		return nil, fmt.Errorf("create board tables: %w", err)
	}
	return &Board{db: db}, nil
}

// AddTodo inserts a new to-do and returns its id.
func (b *Board) AddTodo(text string) (string, error) {
	id := uuid.New().String()
	_, err := b.db.Exec(`INSERT INTO todos (id, text, done, created_at) VALUES (?, ?, 0, ?)`,
		id, text, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("add todo: %w", err)
	}
	return id, nil
}

// CompleteTodo marks a to-do done. Returns false if the id is unknown.
func (b *Board) CompleteTodo(id string) (bool, error) {
	res, err := b.db.Exec(`UPDATE todos SET done = 1 WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("complete todo: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Todos returns all to-dos, pending first, newest first within each group.
func (b *Board) Todos() ([]Todo, error) {
	rows, err := b.db.Query(`SELECT id, text, done, created_at FROM todos ORDER BY done ASC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		var done int
		var created int64
		if err := rows.Scan(&t.ID, &t.Text, &done, &created); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		t.Done = done != 0
		t.CreatedAt = time.Unix(created, 0)
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// AddDeadline inserts a new deadline and returns its id.
func (b *Board) AddDeadline(title string, dueAt time.Time) (string, error) {
	id := uuid.New().String()
	_, err := b.db.Exec(`INSERT INTO deadlines (id, title, due_at, created_at) VALUES (?, ?, ?, ?)`,
		id, title, dueAt.Unix(), time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("add deadline: %w", err)
	}
	return id, nil
}

// Deadlines returns deadlines due at or after now, soonest first.
func (b *Board) Deadlines(now time.Time) ([]Deadline, error) {
	rows, err := b.db.Query(`SELECT id, title, due_at, created_at FROM deadlines WHERE due_at >= ? ORDER BY due_at ASC`,
		now.Unix())
	if err != nil {
		return nil, fmt.Errorf("query deadlines: %w", err)
	}
	defer rows.Close()

	var deadlines []Deadline
	for rows.Next() {
		var d Deadline
		var due, created int64
		if err := rows.Scan(&d.ID, &d.Title, &due, &created); err != nil {
			return nil, fmt.Errorf("scan deadline: %w", err)
		}
		d.DueAt = time.Unix(due, 0)
		d.CreatedAt = time.Unix(created, 0)
		deadlines = append(deadlines, d)
	}
	return deadlines, rows.Err()
}

// AddLink saves a URL with an optional title and returns its id.
func (b *Board) AddLink(url, title string) (string, error) {
	id := uuid.New().String()
	_, err := b.db.Exec(`INSERT INTO links (id, url, title, created_at) VALUES (?, ?, ?, ?)`,
		id, url, title, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("add link: %w", err)
	}
	return id, nil
}

// Links returns saved links, newest first.
func (b *Board) Links() ([]SavedLink, error) {
	rows, err := b.db.Query(`SELECT id, url, title, created_at FROM links ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var links []SavedLink
	for rows.Next() {
		var l SavedLink
		var created int64
		if err := rows.Scan(&l.ID, &l.URL, &l.Title, &created); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		l.CreatedAt = time.Unix(created, 0)
		links = append(links, l)
	}
	return links, rows.Err()
}
