package tui

import (
	"strings"

	"github.com/kavitarao/studyhall/internal/notebook"
)

// treeRow is one visible line of the flattened notebook tree.
type treeRow struct {
	node  *notebook.Node
	depth int
}

// flattenTree turns the tree into display rows, pre-order, so row order
// matches the manager's traversal order.
func flattenTree(roots []*notebook.Node) []treeRow {
	var rows []treeRow
	var walk func(nodes []*notebook.Node, depth int)
	walk = func(nodes []*notebook.Node, depth int) {
		for _, n := range nodes {
			rows = append(rows, treeRow{node: n, depth: depth})
			walk(n.Children, depth+1)
		}
	}
	walk(roots, 0)
	return rows
}

// renderRow renders one tree line with indentation and selection highlight.
func renderRow(r treeRow, selected, active bool) string {
	indent := strings.Repeat("  ", r.depth)
	label := marker(r.node.Type == notebook.TypeNote) + " " + r.node.Name

	var styled string
	switch {
	case selected:
		styled = activeNodeStyle.Render(label)
	case r.node.Type == notebook.TypeSubject:
		styled = subjectStyle.Render(label)
	case r.node.Type == notebook.TypeNote:
		styled = noteStyle.Render(label)
	default:
		styled = containerStyle.Render(label)
	}
	if active && !selected {
		styled += dimStyle.Render(" ●")
	}
	return "  " + indent + styled
}

// rowIndex returns the index of the row with the given node id, or 0.
func rowIndex(rows []treeRow, id string) int {
	for i, r := range rows {
		if r.node.ID == id {
			return i
		}
	}
	return 0
}
