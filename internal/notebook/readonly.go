package notebook

// ReadOnly is the viewer-side variant of the Manager: the same tree and
// content map with lookup, traversal, and selection, but no mutation
// operations and no flush-to-content side effect on selection. It is a
// capability restriction, not a different data structure.
type ReadOnly struct {
	roots    []*Node
	content  ContentMap
	activeID string
}

// NewReadOnly wraps a loaded tree and content map for viewing. A nil content
// map is replaced with an empty one.
func NewReadOnly(roots []*Node, content ContentMap) *ReadOnly {
	if content == nil {
		content = ContentMap{}
	}
	return &ReadOnly{roots: roots, content: content}
}

// Roots returns the tree.
func (r *ReadOnly) Roots() []*Node { return r.roots }

// ActiveID returns the id of the currently selected node, or "" if none.
func (r *ReadOnly) ActiveID() string { return r.activeID }

// FindNode looks up a node by id anywhere in the tree.
func (r *ReadOnly) FindNode(id string) (*Node, bool) {
	return FindNode(r.roots, id)
}

// FindFirstNote returns the first note in pre-order traversal.
func (r *ReadOnly) FindFirstNote() (*Node, bool) {
	return FindFirstNote(r.roots)
}

// SelectNode updates the active node. There is no edit buffer to flush or
// load; the stored content for the selected note (or "" for containers and
// absent entries) is returned directly.
func (r *ReadOnly) SelectNode(id string) (string, bool) {
	n, ok := r.FindNode(id)
	if !ok {
		return "", false
	}
	r.activeID = n.ID
	if n.Type == TypeNote {
		return r.content[n.ID], true
	}
	return "", true
}

// NoteContent returns the stored text for a note id, or "" when absent.
func (r *ReadOnly) NoteContent(id string) string {
	return r.content[id]
}
