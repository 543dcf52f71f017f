package notebook

import (
	"fmt"

	"github.com/google/uuid"
)

// Manager owns one notebook tree and its companion content map for a session
// being edited. It is the sole writer: all mutations happen synchronously in
// response to a discrete user action, so no locking is needed.
//
// The manager also tracks the active node (the node the editor displays) and
// the active note's edit buffer. Switching the active node flushes the
// outgoing buffer into the content map so no edits are lost.
type Manager struct {
	roots   []*Node
	content ContentMap

	activeID string
	buffer   string
}

// NewManager wraps an existing tree and content map, typically the result of
// a gateway load. A nil content map is replaced with an empty one.
func NewManager(roots []*Node, content ContentMap) *Manager {
	if content == nil {
		content = ContentMap{}
	}
	return &Manager{roots: roots, content: content}
}

// Roots returns the current tree. Exactly one root subject node.
func (m *Manager) Roots() []*Node { return m.roots }

// Content returns the content map, including any flushed buffers but not the
// live edit buffer of the active note. Call FlushBuffer first when a full
// snapshot is needed for persistence.
func (m *Manager) Content() ContentMap { return m.content }

// ActiveID returns the id of the currently selected node, or "" if none.
func (m *Manager) ActiveID() string { return m.activeID }

// Buffer returns the edit buffer for the active note. Empty for container
// nodes and when nothing is selected.
func (m *Manager) Buffer() string { return m.buffer }

// FindNode looks up a node by id anywhere in the tree.
func (m *Manager) FindNode(id string) (*Node, bool) {
	return FindNode(m.roots, id)
}

// FindFirstNote returns the first note in pre-order traversal, used to pick
// an initial selection when a session is opened.
func (m *Manager) FindFirstNote() (*Node, bool) {
	return FindFirstNote(m.roots)
}

// AddNode creates a node of the given type under parentID and returns the new
// node's id so the caller can immediately select it. The name must be
// non-empty after trimming, the parent must exist, and the placement must be
// allowed by the hierarchy table. New nodes are appended to the parent's
// children, never inserted mid-sequence. Note nodes get an empty content
// entry.
func (m *Manager) AddNode(parentID string, typ NodeType, name string) (string, error) {
	name = trimName(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if !typ.Valid() {
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidHierarchy, typ)
	}
	parent, ok := m.FindNode(parentID)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrParentNotFound, parentID)
	}
	if !CanContain(parent.Type, typ) {
		return "", fmt.Errorf("%w: %s under %s", ErrInvalidHierarchy, typ, parent.Type)
	}

	n := &Node{
		ID:       uuid.New().String(),
		Name:     name,
		Type:     typ,
		ParentID: parent.ID,
	}
	parent.Children = append(parent.Children, n)
	if typ == TypeNote {
		m.content[n.ID] = ""
	}
	return n.ID, nil
}

// RenameNode replaces a node's name in place. A name that trims to empty is
// discarded and the node keeps its prior name (silent no-op, so a rename
// never blanks out a label). Returns true if the name was changed.
func (m *Manager) RenameNode(id, newName string) bool {
	newName = trimName(newName)
	if newName == "" {
		return false
	}
	n, ok := m.FindNode(id)
	if !ok {
		return false
	}
	n.Name = newName
	return true
}

// DeleteNode removes the node and its entire subtree, and removes every note
// id found in the subtree from the content map. Deleting the root is
// disallowed. If the deleted subtree contained the active node, the active
// selection is cleared and the caller should re-select (typically the first
// remaining note).
func (m *Manager) DeleteNode(id string) error {
	for _, r := range m.roots {
		if r.ID == id {
			return ErrDeleteRoot
		}
	}
	n, ok := m.FindNode(id)
	if !ok {
		return nil // already gone; routine for callers probing optional nodes
	}
	parent, ok := m.FindNode(n.ParentID)
	if !ok {
		// ParentID must resolve for every non-root node; a miss here means a
		// corrupted tree, not bad user input.
		panic(fmt.Sprintf("notebook: node %q has orphaned parent reference %q", n.ID, n.ParentID))
	}

	for i, c := range parent.Children {
		if c.ID == id {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			break
		}
	}
	for _, noteID := range collectNoteIDs(n, nil) {
		delete(m.content, noteID)
		if noteID == m.activeID {
			m.activeID = ""
			m.buffer = ""
		}
	}
	if _, stillThere := m.FindNode(m.activeID); m.activeID != "" && !stillThere {
		m.activeID = ""
		m.buffer = ""
	}
	return nil
}

// SelectNode makes the node with the given id the active node. Before
// switching, any pending edits to the outgoing note are flushed into the
// content map. If the newly selected node is a note, its stored content (or
// "" if absent) becomes the new edit buffer; for container types the active
// id still updates but the buffer is empty. Returns the new buffer and
// whether the node was found; on a miss the selection is unchanged.
func (m *Manager) SelectNode(id string) (string, bool) {
	n, ok := m.FindNode(id)
	if !ok {
		return m.buffer, false
	}
	m.FlushBuffer()
	m.activeID = n.ID
	if n.Type == TypeNote {
		m.buffer = m.content[n.ID]
	} else {
		m.buffer = ""
	}
	return m.buffer, true
}

// SetBuffer replaces the edit buffer for the active note. No-op unless the
// active node is a note.
func (m *Manager) SetBuffer(text string) {
	if n, ok := m.FindNode(m.activeID); ok && n.Type == TypeNote {
		m.buffer = text
	}
}

// FlushBuffer writes the active note's edit buffer into the content map.
// Called before switching nodes and before persistence snapshots so the
// stored state always reflects the latest edits.
func (m *Manager) FlushBuffer() {
	n, ok := m.FindNode(m.activeID)
	if !ok || n.Type != TypeNote {
		return
	}
	if m.content[n.ID] != m.buffer {
		m.content[n.ID] = m.buffer
	}
}

// AppendToNote appends text to the note with the given id, regardless of
// which node is currently active. Used by AI completions, which capture their
// target note id at request time and must not write into whatever note
// happens to be active when the response arrives. Returns false if id does
// not name a note node.
func (m *Manager) AppendToNote(id, text string) bool {
	n, ok := m.FindNode(id)
	if !ok || n.Type != TypeNote {
		return false
	}
	if id == m.activeID {
		m.buffer += text
		m.content[id] = m.buffer
		return true
	}
	m.content[id] += text
	return true
}
