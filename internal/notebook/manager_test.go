package notebook_test

import (
	"errors"
	"testing"

	"github.com/kavitarao/studyhall/internal/notebook"
)

// newStudyTree builds a small fixed tree by hand:
//
//	Physics (subject)
//	├── Lecture Note (note)
//	└── Waves (title)
//	    ├── Interference (subheading)
//	    │   └── Lab Note (note)
//	    └── Waves Note (note)
//
// Returns the manager plus the ids of the named nodes.
func newStudyTree(t *testing.T) (*notebook.Manager, map[string]string) {
	t.Helper()

	root := &notebook.Node{ID: "root", Name: "Physics", Type: notebook.TypeSubject}
	lecture := &notebook.Node{ID: "lecture", Name: "Lecture Note", Type: notebook.TypeNote, ParentID: "root"}
	waves := &notebook.Node{ID: "waves", Name: "Waves", Type: notebook.TypeTitle, ParentID: "root"}
	interference := &notebook.Node{ID: "interference", Name: "Interference", Type: notebook.TypeSubheading, ParentID: "waves"}
	lab := &notebook.Node{ID: "lab", Name: "Lab Note", Type: notebook.TypeNote, ParentID: "interference"}
	wavesNote := &notebook.Node{ID: "waves-note", Name: "Waves Note", Type: notebook.TypeNote, ParentID: "waves"}

	root.Children = []*notebook.Node{lecture, waves}
	waves.Children = []*notebook.Node{interference, wavesNote}
	interference.Children = []*notebook.Node{lab}

	roots := []*notebook.Node{root}
	if err := notebook.Validate(roots); err != nil {
		t.Fatalf("fixture tree invalid: %v", err)
	}

	content := notebook.ContentMap{
		"lecture":    "lecture body",
		"lab":        "lab body",
		"waves-note": "",
	}
	ids := map[string]string{
		"root": "root", "lecture": "lecture", "waves": "waves",
		"interference": "interference", "lab": "lab", "waves-note": "waves-note",
	}
	return notebook.NewManager(roots, content), ids
}

func TestAddNodeHierarchyRules(t *testing.T) {
	cases := []struct {
		name    string
		parent  string
		typ     notebook.NodeType
		allowed bool
	}{
		{"title under subject", "root", notebook.TypeTitle, true},
		{"note under subject", "root", notebook.TypeNote, true},
		{"subheading under subject", "root", notebook.TypeSubheading, false},
		{"subject under subject", "root", notebook.TypeSubject, false},
		{"subheading under title", "waves", notebook.TypeSubheading, true},
		{"note under title", "waves", notebook.TypeNote, true},
		{"title under title", "waves", notebook.TypeTitle, false},
		{"note under subheading", "interference", notebook.TypeNote, true},
		{"title under subheading", "interference", notebook.TypeTitle, false},
		{"anything under note", "lecture", notebook.TypeNote, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newStudyTree(t)
			id, err := m.AddNode(tc.parent, tc.typ, "New Node")
			if tc.allowed {
				if err != nil {
					t.Fatalf("expected success, got: %v", err)
				}
				if _, ok := m.FindNode(id); !ok {
					t.Errorf("new node %q not reachable in tree", id)
				}
				if err := notebook.Validate(m.Roots()); err != nil {
					t.Errorf("tree invalid after add: %v", err)
				}
			} else {
				if !errors.Is(err, notebook.ErrInvalidHierarchy) {
					t.Fatalf("expected ErrInvalidHierarchy, got: %v", err)
				}
			}
		})
	}
}

func TestAddNodeRejectsBlankName(t *testing.T) {
	m, _ := newStudyTree(t)
	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := m.AddNode("root", notebook.TypeNote, name); !errors.Is(err, notebook.ErrEmptyName) {
			t.Errorf("name %q: expected ErrEmptyName, got: %v", name, err)
		}
	}
}

func TestAddNodeUnknownParent(t *testing.T) {
	m, _ := newStudyTree(t)
	if _, err := m.AddNode("nope", notebook.TypeNote, "x"); !errors.Is(err, notebook.ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got: %v", err)
	}
}

func TestAddNoteCreatesContentEntry(t *testing.T) {
	m, _ := newStudyTree(t)

	id, err := m.AddNode("waves", notebook.TypeNote, "  Fresh Note  ")
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	n, _ := m.FindNode(id)
	if n.Name != "Fresh Note" {
		t.Errorf("name not trimmed: got %q", n.Name)
	}
	body, ok := m.Content()[id]
	if !ok {
		t.Fatal("new note has no content entry")
	}
	if body != "" {
		t.Errorf("new note content should be empty, got %q", body)
	}

	// Container nodes get no content entry.
	tid, err := m.AddNode("root", notebook.TypeTitle, "Optics")
	if err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if _, ok := m.Content()[tid]; ok {
		t.Error("title node should not have a content entry")
	}
}

func TestAddNodeAppendsInOrder(t *testing.T) {
	m, _ := newStudyTree(t)

	first, _ := m.AddNode("root", notebook.TypeNote, "First")
	second, _ := m.AddNode("root", notebook.TypeNote, "Second")

	root := m.Roots()[0]
	n := len(root.Children)
	if root.Children[n-2].ID != first || root.Children[n-1].ID != second {
		t.Error("new children not appended in insertion order")
	}
}

func TestRenameNode(t *testing.T) {
	m, _ := newStudyTree(t)

	if !m.RenameNode("waves", "  Wave Optics ") {
		t.Fatal("rename reported no change")
	}
	n, _ := m.FindNode("waves")
	if n.Name != "Wave Optics" {
		t.Errorf("got %q, want %q", n.Name, "Wave Optics")
	}

	// A name that trims to empty is a silent no-op.
	if m.RenameNode("waves", "   ") {
		t.Error("blank rename should report false")
	}
	if n.Name != "Wave Optics" {
		t.Errorf("blank rename changed name to %q", n.Name)
	}

	if m.RenameNode("missing", "x") {
		t.Error("rename of unknown id should report false")
	}
}

func TestDeleteRootDisallowed(t *testing.T) {
	m, _ := newStudyTree(t)
	if err := m.DeleteNode("root"); !errors.Is(err, notebook.ErrDeleteRoot) {
		t.Fatalf("expected ErrDeleteRoot, got: %v", err)
	}
}

func TestDeleteMissingIsNoop(t *testing.T) {
	m, _ := newStudyTree(t)
	if err := m.DeleteNode("missing"); err != nil {
		t.Fatalf("delete of unknown id should be a no-op, got: %v", err)
	}
}

func TestDeleteCascadesSubtreeAndContent(t *testing.T) {
	m, _ := newStudyTree(t)

	// Select a note inside the doomed subtree so the active selection must be
	// cleared too.
	m.SelectNode("lab")

	if err := m.DeleteNode("waves"); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}

	for _, id := range []string{"waves", "interference", "lab", "waves-note"} {
		if _, ok := m.FindNode(id); ok {
			t.Errorf("node %q still reachable after subtree delete", id)
		}
	}
	for _, id := range []string{"lab", "waves-note"} {
		if _, ok := m.Content()[id]; ok {
			t.Errorf("content entry %q survived subtree delete", id)
		}
	}
	// Content outside the subtree is untouched.
	if m.Content()["lecture"] != "lecture body" {
		t.Error("unrelated content modified by delete")
	}
	if m.ActiveID() != "" {
		t.Errorf("active selection should be cleared, got %q", m.ActiveID())
	}
	if err := notebook.Validate(m.Roots()); err != nil {
		t.Errorf("tree invalid after delete: %v", err)
	}
}

func TestSelectNodeFlushesOutgoingBuffer(t *testing.T) {
	m, _ := newStudyTree(t)

	buf, ok := m.SelectNode("lecture")
	if !ok || buf != "lecture body" {
		t.Fatalf("SelectNode(lecture) = %q, %v", buf, ok)
	}

	// Edit note A, then switch to note B: A's edits must land in the content
	// map and B's stored body must become the buffer.
	m.SetBuffer("lecture body, edited")
	buf, ok = m.SelectNode("lab")
	if !ok || buf != "lab body" {
		t.Fatalf("SelectNode(lab) = %q, %v", buf, ok)
	}
	if got := m.Content()["lecture"]; got != "lecture body, edited" {
		t.Errorf("outgoing buffer not flushed: content[lecture] = %q", got)
	}
}

func TestSelectContainerClearsBuffer(t *testing.T) {
	m, _ := newStudyTree(t)

	m.SelectNode("lecture")
	m.SetBuffer("pending edit")
	buf, ok := m.SelectNode("waves")
	if !ok || buf != "" {
		t.Fatalf("SelectNode(waves) = %q, %v; container selection should yield empty buffer", buf, ok)
	}
	// The pending edit was still flushed.
	if got := m.Content()["lecture"]; got != "pending edit" {
		t.Errorf("content[lecture] = %q, want %q", got, "pending edit")
	}

	// SetBuffer is a no-op while a container is active.
	m.SetBuffer("should vanish")
	if m.Buffer() != "" {
		t.Errorf("buffer changed while container active: %q", m.Buffer())
	}
}

func TestSelectUnknownLeavesSelection(t *testing.T) {
	m, _ := newStudyTree(t)

	m.SelectNode("lecture")
	m.SetBuffer("draft")
	buf, ok := m.SelectNode("missing")
	if ok {
		t.Fatal("selecting unknown id should report false")
	}
	if buf != "draft" || m.ActiveID() != "lecture" {
		t.Errorf("failed select changed state: buffer=%q active=%q", buf, m.ActiveID())
	}
}

func TestAppendToNote(t *testing.T) {
	m, _ := newStudyTree(t)

	// Append to an inactive note: content only.
	if !m.AppendToNote("lab", "\n\nmore") {
		t.Fatal("append to inactive note failed")
	}
	if got := m.Content()["lab"]; got != "lab body\n\nmore" {
		t.Errorf("content[lab] = %q", got)
	}

	// Append to the active note: buffer and content both update.
	m.SelectNode("lecture")
	if !m.AppendToNote("lecture", " +ai") {
		t.Fatal("append to active note failed")
	}
	if m.Buffer() != "lecture body +ai" {
		t.Errorf("buffer = %q", m.Buffer())
	}
	if got := m.Content()["lecture"]; got != "lecture body +ai" {
		t.Errorf("content[lecture] = %q", got)
	}

	// The active node may have moved since the request was issued; the append
	// still lands on the captured target.
	m.SelectNode("lab")
	if !m.AppendToNote("lecture", " late") {
		t.Fatal("append to captured target failed")
	}
	if got := m.Content()["lecture"]; got != "lecture body +ai late" {
		t.Errorf("content[lecture] = %q", got)
	}

	// Container nodes and unknown ids are rejected.
	if m.AppendToNote("waves", "x") {
		t.Error("append to container should report false")
	}
	if m.AppendToNote("missing", "x") {
		t.Error("append to unknown id should report false")
	}
}

func TestFindFirstNotePreOrder(t *testing.T) {
	m, _ := newStudyTree(t)
	n, ok := m.FindFirstNote()
	if !ok || n.ID != "lecture" {
		t.Fatalf("FindFirstNote = %v, %v; want lecture", n, ok)
	}

	// Remove the shallow note; the next note in pre-order is nested deeper.
	if err := m.DeleteNode("lecture"); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}
	n, ok = m.FindFirstNote()
	if !ok || n.ID != "lab" {
		t.Fatalf("FindFirstNote after delete = %v, %v; want lab", n, ok)
	}
}

func TestValidateRejectsBrokenTrees(t *testing.T) {
	subject := func() *notebook.Node {
		return &notebook.Node{ID: "r", Name: "S", Type: notebook.TypeSubject}
	}

	t.Run("two roots", func(t *testing.T) {
		if err := notebook.Validate([]*notebook.Node{subject(), subject()}); err == nil {
			t.Fatal("expected error for two roots")
		}
	})

	t.Run("non-subject root", func(t *testing.T) {
		root := &notebook.Node{ID: "r", Name: "N", Type: notebook.TypeNote}
		if err := notebook.Validate([]*notebook.Node{root}); err == nil {
			t.Fatal("expected error for non-subject root")
		}
	})

	t.Run("duplicate ids", func(t *testing.T) {
		root := subject()
		root.Children = []*notebook.Node{
			{ID: "dup", Name: "a", Type: notebook.TypeNote, ParentID: "r"},
			{ID: "dup", Name: "b", Type: notebook.TypeNote, ParentID: "r"},
		}
		if err := notebook.Validate([]*notebook.Node{root}); err == nil {
			t.Fatal("expected error for duplicate ids")
		}
	})

	t.Run("stale parent reference", func(t *testing.T) {
		root := subject()
		root.Children = []*notebook.Node{
			{ID: "n", Name: "a", Type: notebook.TypeNote, ParentID: "someone-else"},
		}
		if err := notebook.Validate([]*notebook.Node{root}); err == nil {
			t.Fatal("expected error for stale parent reference")
		}
	})

	t.Run("illegal placement", func(t *testing.T) {
		root := subject()
		root.Children = []*notebook.Node{
			{ID: "sh", Name: "a", Type: notebook.TypeSubheading, ParentID: "r"},
		}
		if err := notebook.Validate([]*notebook.Node{root}); err == nil {
			t.Fatal("expected error for subheading directly under subject")
		}
	})
}
