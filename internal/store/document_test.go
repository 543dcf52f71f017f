package store_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kavitarao/studyhall/internal/notebook"
	"github.com/kavitarao/studyhall/internal/session"
	"github.com/kavitarao/studyhall/internal/store"
)

func newDocumentStore(t *testing.T) *store.DocumentStore {
	t.Helper()
	ds, err := store.OpenDocumentStore(filepath.Join(t.TempDir(), "studyhall.db"))
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	return ds
}

func TestDocumentSessionRoundTrip(t *testing.T) {
	ds := newDocumentStore(t)

	s := session.New("Chemistry", 45*time.Minute, session.TimerCountdown)
	note, ok := notebook.FindFirstNote(s.Tree)
	require.True(t, ok)
	s.Content[note.ID] = "mole ratios"

	require.NoError(t, ds.SaveSession(s))

	loaded, err := ds.LoadActive()
	require.NoError(t, err)
	require.Equal(t, s.ID, loaded.ID)
	require.Equal(t, "Chemistry", loaded.Subject)
	require.Equal(t, 45*time.Minute, loaded.PlannedDuration)
	require.Equal(t, session.TimerCountdown, loaded.TimerMode)
	require.Nil(t, loaded.EndTime)
	require.NoError(t, notebook.Validate(loaded.Tree))
	require.Equal(t, "mole ratios", loaded.Content[note.ID])
}

func TestDocumentSaveIsIdempotent(t *testing.T) {
	ds := newDocumentStore(t)

	s := session.New("Latin", 0, session.TimerStopwatch)
	require.NoError(t, ds.SaveSession(s))
	require.NoError(t, ds.SaveSession(s))

	// Still exactly one row for the session.
	var count int
	row := ds.DB().QueryRow(`SELECT COUNT(*) FROM sessions WHERE id = ?`, s.ID)
	require.NoError(t, row.Scan(&count))
	require.Equal(t, 1, count)
}

func TestDocumentArchiveClearsActiveSlot(t *testing.T) {
	ds := newDocumentStore(t)

	s := session.New("History", 0, session.TimerStopwatch)
	s.StartTime = time.Now().Add(-20 * time.Minute)
	require.NoError(t, ds.SaveSession(s))

	s.End(time.Now())
	require.NoError(t, ds.ArchiveSession(s))

	_, err := ds.LoadActive()
	require.ErrorIs(t, err, store.ErrNoSession)

	// The archived row is still loadable by id.
	loaded, err := ds.LoadSession(s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.EndTime)

	sums, err := ds.ListSessions()
	require.NoError(t, err)
	require.Len(t, sums, 1)
	require.Equal(t, "History", sums[0].Subject)
}

func TestDocumentListExcludesActiveSession(t *testing.T) {
	ds := newDocumentStore(t)

	ended := session.New("Done", 0, session.TimerStopwatch)
	ended.End(time.Now())
	require.NoError(t, ds.ArchiveSession(ended))

	live := session.New("Live", 0, session.TimerStopwatch)
	require.NoError(t, ds.SaveSession(live))

	sums, err := ds.ListSessions()
	require.NoError(t, err)
	require.Len(t, sums, 1)
	require.Equal(t, ended.ID, sums[0].ID)
}

func TestDocumentSaveTreeAndContent(t *testing.T) {
	ds := newDocumentStore(t)

	s := session.New("Physics", 0, session.TimerStopwatch)
	require.NoError(t, ds.SaveSession(s))

	mgr := notebook.NewManager(s.Tree, s.Content)
	noteID, err := mgr.AddNode(s.Tree[0].ID, notebook.TypeNote, "Momentum")
	require.NoError(t, err)
	mgr.AppendToNote(noteID, "p = mv")

	require.NoError(t, ds.SaveTree(s.ID, mgr.Roots()))
	require.NoError(t, ds.SaveContent(s.ID, mgr.Content()))

	roots, err := ds.LoadTree(s.ID)
	require.NoError(t, err)
	_, found := notebook.FindNode(roots, noteID)
	require.True(t, found)

	content, err := ds.LoadContent(s.ID)
	require.NoError(t, err)
	require.Equal(t, "p = mv", content[noteID])
}

func TestDocumentSaveTreeUnknownSession(t *testing.T) {
	ds := newDocumentStore(t)

	roots, _ := store.SeedTree("x")
	err := ds.SaveTree("unknown", roots)
	require.ErrorIs(t, err, store.ErrNoSession)

	err = ds.SaveContent("unknown", notebook.ContentMap{})
	require.ErrorIs(t, err, store.ErrNoSession)
}

func TestDocumentLoadTreeSeedsWhenMissing(t *testing.T) {
	ds := newDocumentStore(t)

	roots, err := ds.LoadTree("unknown")
	require.NoError(t, err)
	require.NoError(t, notebook.Validate(roots))

	content, err := ds.LoadContent("unknown")
	require.NoError(t, err)
	require.Empty(t, content)
}

func TestDocumentLoadSessionUnknown(t *testing.T) {
	ds := newDocumentStore(t)
	_, err := ds.LoadSession("nope")
	require.True(t, errors.Is(err, store.ErrNoSession))
}
