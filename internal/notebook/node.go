// Package notebook implements the session notebook tree: a hierarchy of
// subject/title/subheading/note nodes plus the content map that holds each
// note's text body. The Manager owns one tree and guards its invariants
// after every operation.
package notebook

import (
	"errors"
	"fmt"
	"strings"
)

// NodeType categorizes the different kinds of nodes in the notebook tree.
type NodeType string

const (
	TypeSubject    NodeType = "subject"
	TypeTitle      NodeType = "title"
	TypeSubheading NodeType = "subheading"
	TypeNote       NodeType = "note"
)

// Valid reports whether t is one of the four known node types.
func (t NodeType) Valid() bool {
	switch t {
	case TypeSubject, TypeTitle, TypeSubheading, TypeNote:
		return true
	}
	return false
}

// Node is a single node in the notebook hierarchy. Ownership flows top-down
// through Children; ParentID is a non-owning back-reference used for lookups
// and reconstruction.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     NodeType `json:"type"`
	Children []*Node  `json:"children,omitempty"`
	ParentID string   `json:"parent_id,omitempty"` // empty for the root
}

// ContentMap maps a note-node id to the note's text body. Keys absent from
// the map are treated as an empty note.
type ContentMap map[string]string

// Validation and mutation errors. Lookup misses are not errors; operations
// that probe for optional nodes return an explicit ok bool instead.
var (
	ErrEmptyName        = errors.New("node name is empty")
	ErrInvalidHierarchy = errors.New("node type not allowed under this parent")
	ErrParentNotFound   = errors.New("parent node not found")
	ErrDeleteRoot       = errors.New("cannot delete the root subject node")
)

// allowedChildren is the hierarchy placement table: which child types each
// parent type accepts. Notes never gain children through the public API.
var allowedChildren = map[NodeType]map[NodeType]bool{
	TypeSubject:    {TypeTitle: true, TypeNote: true},
	TypeTitle:      {TypeSubheading: true, TypeNote: true},
	TypeSubheading: {TypeNote: true},
	TypeNote:       {},
}

// CanContain reports whether a node of type child may be added under a node
// of type parent.
func CanContain(parent, child NodeType) bool {
	return allowedChildren[parent][child]
}

// FindNode searches roots depth-first, in child order, for the node with the
// given id. Works for arbitrarily deep nesting.
func FindNode(roots []*Node, id string) (*Node, bool) {
	for _, n := range roots {
		if n.ID == id {
			return n, true
		}
		if found, ok := FindNode(n.Children, id); ok {
			return found, true
		}
	}
	return nil, false
}

// FindFirstNote returns the first note node encountered in a pre-order
// traversal of roots. Deterministic for a fixed tree.
func FindFirstNote(roots []*Node) (*Node, bool) {
	for _, n := range roots {
		if n.Type == TypeNote {
			return n, true
		}
		if found, ok := FindFirstNote(n.Children); ok {
			return found, true
		}
	}
	return nil, false
}

// collectNoteIDs appends the ids of every note node in the subtree rooted at
// n (including n itself) to dst.
func collectNoteIDs(n *Node, dst []string) []string {
	if n.Type == TypeNote {
		dst = append(dst, n.ID)
	}
	for _, c := range n.Children {
		dst = collectNoteIDs(c, dst)
	}
	return dst
}

// Validate checks the structural invariants of a tree: exactly one root of
// type subject with no parent reference, unique ids, every non-root node's
// ParentID resolving to its actual parent, and placement obeying the
// hierarchy table. Used by tests and as a defensive check after load.
func Validate(roots []*Node) error {
	if len(roots) != 1 {
		return fmt.Errorf("expected exactly one root node, got %d", len(roots))
	}
	root := roots[0]
	if root.Type != TypeSubject {
		return fmt.Errorf("root node must be a subject, got %q", root.Type)
	}
	if root.ParentID != "" {
		return fmt.Errorf("root node has a parent reference %q", root.ParentID)
	}

	seen := make(map[string]bool)
	var walk func(n *Node) error
	walk = func(n *Node) error {
		if n.ID == "" {
			return fmt.Errorf("node %q has an empty id", n.Name)
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
		if !n.Type.Valid() {
			return fmt.Errorf("node %q has unknown type %q", n.ID, n.Type)
		}
		for _, c := range n.Children {
			if c.ParentID != n.ID {
				return fmt.Errorf("node %q has parent reference %q, expected %q", c.ID, c.ParentID, n.ID)
			}
			if !CanContain(n.Type, c.Type) {
				return fmt.Errorf("node %q (%s) not allowed under %q (%s)", c.ID, c.Type, n.ID, n.Type)
			}
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}

// trimName normalizes a user-supplied node name.
func trimName(name string) string {
	return strings.TrimSpace(name)
}
