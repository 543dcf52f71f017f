package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/session"
)

// DiskStore is the local durable cache: the active session lives in
// session.json under the XDG data directory, ended sessions under history/.
// All writes go through a temp file + os.Rename so a crash never leaves a
// half-written snapshot.
type DiskStore struct {
	dir string
}

// NewDiskStore returns a DiskStore rooted at the studyhall data directory.
// Path: $XDG_DATA_HOME/studyhall or ~/.local/share/studyhall.
func NewDiskStore() (*DiskStore, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "history"), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// NewDiskStoreAt returns a DiskStore rooted at an explicit directory, used
// when the config overrides the default data dir (and by tests).
func NewDiskStoreAt(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(dir, "history"), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// dataDir returns the studyhall-specific XDG data directory.
func dataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "studyhall"), nil
}

// Dir returns the data directory backing this store.
func (d *DiskStore) Dir() string { return d.dir }

// ActivePath returns the path of the active session file. The viewer watches
// this file to reload its snapshot when editing continues elsewhere.
func (d *DiskStore) ActivePath() string { return filepath.Join(d.dir, "session.json") }

func (d *DiskStore) historyPath(id string) string {
	return filepath.Join(d.dir, "history", id+".json")
}

// writeJSON marshals v and writes it atomically via a temp file + os.Rename.
func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "session-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	return nil
}

func readSession(path string) (*session.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}
	var s session.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session state: %w", err)
	}
	return &s, nil
}

// SaveSession overwrites the active session snapshot.
func (d *DiskStore) SaveSession(s *session.Session) error {
	return writeJSON(d.ActivePath(), s)
}

// LoadActive reads the active session file. Returns ErrNoSession if absent.
func (d *DiskStore) LoadActive() (*session.Session, error) {
	return readSession(d.ActivePath())
}

// LoadSession returns the session with the given id, checking the active
// slot first and then history.
func (d *DiskStore) LoadSession(id string) (*session.Session, error) {
	if s, err := d.LoadActive(); err == nil && s.ID == id {
		return s, nil
	}
	s, err := readSession(d.historyPath(id))
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil, fmt.Errorf("%w: %s", ErrNoSession, id)
		}
		return nil, err
	}
	return s, nil
}

// ArchiveSession writes the ended session into history and removes the
// active session file.
func (d *DiskStore) ArchiveSession(s *session.Session) error {
	if !s.Ended() {
		return fmt.Errorf("cannot archive a session that has not ended")
	}
	if err := writeJSON(d.historyPath(s.ID), s); err != nil {
		return err
	}
	return d.DeleteActive()
}

// DeleteActive removes the active session file from disk.
func (d *DiskStore) DeleteActive() error {
	if err := os.Remove(d.ActivePath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	return nil
}

// LoadTree returns the active session's tree, or a fresh default seed when no
// session (or no tree) has been persisted yet.
func (d *DiskStore) LoadTree(sessionID string) ([]*notebook.Node, error) {
	s, err := d.LoadSession(sessionID)
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

// SaveTree overwrites the tree of the active session.
func (d *DiskStore) SaveTree(sessionID string, roots []*notebook.Node) error {
	s, err := d.LoadActive()
	if err != nil {
		return err
	}
	if s.ID != sessionID {
		return ErrSessionEnded
	}
	s.Tree = roots
	return d.SaveSession(s)
}

// LoadContent returns the active session's content map, or an empty map.
func (d *DiskStore) LoadContent(sessionID string) (notebook.ContentMap, error) {
	s, err := d.LoadSession(sessionID)
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

// SaveContent overwrites the content map of the active session.
func (d *DiskStore) SaveContent(sessionID string, content notebook.ContentMap) error {
	s, err := d.LoadActive()
	if err != nil {
		return err
	}
	if s.ID != sessionID {
		return ErrSessionEnded
	}
	s.Content = content
	return d.SaveSession(s)
}

// ListSessions returns summaries of archived sessions, newest first.
func (d *DiskStore) ListSessions() ([]session.Summary, error) {
	entries, err := os.ReadDir(filepath.Join(d.dir, "history"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var sums []session.Summary
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		s, err := readSession(filepath.Join(d.dir, "history", e.Name()))
		if err != nil {
			continue // skip unreadable history entries
		}
		sums = append(sums, summarize(s))
	}
	sort.Slice(sums, func(i, j int) bool { return sums[i].EndTime.After(sums[j].EndTime) })
	return sums, nil
}

// Close is a no-op for the disk store.
func (d *DiskStore) Close() error { return nil }
