package cmd

import (
	"path/filepath"

	"github.com/kavitarao/studyhall/internal/board"
	"github.com/kavitarao/studyhall/internal/store"
)

// openBoard opens the dashboard storage. Board data always lives in the
// SQLite document store, even when sessions use the local backend, so to-dos
// and deadlines survive independently of session files.
func openBoard() (*board.Board, *store.DocumentStore, error) {
	dir := cfg.DataDir
	if dir == "" {
		ds, err := openDiskStore()
		if err != nil {
			return nil, nil, err
		}
		dir = ds.Dir()
	}
	doc, err := store.OpenDocumentStore(filepath.Join(dir, "studyhall.db"))
	if err != nil {
		return nil, nil, err
	}
	b, err := board.New(doc.DB())
	if err != nil {
		doc.Close()
		return nil, nil, err
	}
	return b, doc, nil
}
