package notebook_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/kavitarao/studyhall/internal/notebook"
)

// collectIDs returns every node id in the tree, pre-order.
func collectIDs(roots []*notebook.Node) []string {
	var ids []string
	var walk func(nodes []*notebook.Node)
	walk = func(nodes []*notebook.Node) {
		for _, n := range nodes {
			ids = append(ids, n.ID)
			walk(n.Children)
		}
	}
	walk(roots)
	return ids
}

// collectNotes returns the id of every note node in the tree.
func collectNotes(roots []*notebook.Node) map[string]bool {
	notes := make(map[string]bool)
	var walk func(nodes []*notebook.Node)
	walk = func(nodes []*notebook.Node) {
		for _, n := range nodes {
			if n.Type == notebook.TypeNote {
				notes[n.ID] = true
			}
			walk(n.Children)
		}
	}
	walk(roots)
	return notes
}

var nodeTypeGen = rapid.SampledFrom([]notebook.NodeType{
	notebook.TypeSubject, notebook.TypeTitle, notebook.TypeSubheading, notebook.TypeNote,
})

// Property: no sequence of manager operations can produce a structurally
// invalid tree, and the content map always holds exactly one entry per note
// node once buffers are flushed.
func TestManagerOperationsPreserveInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := &notebook.Node{ID: "root", Name: "Subject", Type: notebook.TypeSubject}
		note := &notebook.Node{ID: "seed-note", Name: "Session Note", Type: notebook.TypeNote, ParentID: "root"}
		root.Children = []*notebook.Node{note}
		m := notebook.NewManager([]*notebook.Node{root}, notebook.ContentMap{"seed-note": ""})

		numOps := rapid.IntRange(1, 60).Draw(t, "num_ops")
		for i := 0; i < numOps; i++ {
			ids := collectIDs(m.Roots())
			// Mix in an id that is never in the tree so miss paths get hit.
			targets := append(ids, "ghost")
			target := rapid.SampledFrom(targets).Draw(t, "target")

			switch rapid.IntRange(0, 5).Draw(t, "op") {
			case 0: // add
				typ := nodeTypeGen.Draw(t, "type")
				name := rapid.StringN(0, 20, -1).Draw(t, "name")
				if id, err := m.AddNode(target, typ, name); err == nil {
					if _, ok := m.FindNode(id); !ok {
						t.Fatalf("AddNode returned id %q not present in tree", id)
					}
				}
			case 1: // rename
				m.RenameNode(target, rapid.StringN(0, 20, -1).Draw(t, "new_name"))
			case 2: // delete
				if err := m.DeleteNode(target); err != nil && target != "root" {
					t.Fatalf("DeleteNode(%q): %v", target, err)
				}
			case 3: // select
				m.SelectNode(target)
			case 4: // type into the active note
				m.SetBuffer(rapid.StringN(0, 50, -1).Draw(t, "text"))
			case 5: // ai-style append
				m.AppendToNote(target, rapid.StringN(0, 20, -1).Draw(t, "append"))
			}

			if err := notebook.Validate(m.Roots()); err != nil {
				t.Fatalf("tree invalid after op %d: %v", i, err)
			}
		}

		m.FlushBuffer()

		notes := collectNotes(m.Roots())
		content := m.Content()
		for id := range content {
			if !notes[id] {
				t.Errorf("content entry %q has no matching note node", id)
			}
		}
		for id := range notes {
			if _, ok := content[id]; !ok {
				t.Errorf("note %q has no content entry", id)
			}
		}

		// The active id, when set, must name a live node.
		if active := m.ActiveID(); active != "" {
			if _, ok := m.FindNode(active); !ok {
				t.Errorf("active id %q points at a deleted node", active)
			}
		}
	})
}

// Property: deleting any non-root node removes its whole subtree and nothing
// else.
func TestDeleteRemovesExactlyTheSubtree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := &notebook.Node{ID: "root", Name: "Subject", Type: notebook.TypeSubject}
		m := notebook.NewManager([]*notebook.Node{root}, notebook.ContentMap{})

		// Grow a random tree through the public API only.
		numAdds := rapid.IntRange(3, 30).Draw(t, "num_adds")
		for i := 0; i < numAdds; i++ {
			ids := collectIDs(m.Roots())
			parent := rapid.SampledFrom(ids).Draw(t, "parent")
			typ := nodeTypeGen.Draw(t, "type")
			m.AddNode(parent, typ, "n")
		}

		ids := collectIDs(m.Roots())
		if len(ids) < 2 {
			t.Skip("tree stayed a bare root")
		}
		victim := rapid.SampledFrom(ids[1:]).Draw(t, "victim")

		n, _ := m.FindNode(victim)
		doomed := make(map[string]bool)
		for _, id := range collectIDs([]*notebook.Node{n}) {
			doomed[id] = true
		}

		if err := m.DeleteNode(victim); err != nil {
			t.Fatalf("DeleteNode(%q): %v", victim, err)
		}

		for _, id := range ids {
			_, alive := m.FindNode(id)
			if doomed[id] && alive {
				t.Errorf("node %q survived deletion of its ancestor", id)
			}
			if !doomed[id] && !alive {
				t.Errorf("node %q outside the subtree was deleted", id)
			}
		}
	})
}
