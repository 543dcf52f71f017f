package export

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kavitarao/studyhall/internal/notebook"
)

// BundleRenderer serializes a Bundle to bytes.
type BundleRenderer interface {
	Render(bundle *Bundle) ([]byte, error)
}

// JSONRenderer renders a Bundle as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(bundle *Bundle) ([]byte, error) {
	return json.MarshalIndent(bundle, "", "  ")
}

// MarkdownRenderer renders a Bundle as human-readable Markdown with an
// embedded base64 JSON payload for lossless round-trip parsing.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(bundle *Bundle) ([]byte, error) {
	// Marshal bundle to JSON and base64-encode it for the embedded payload.
	jsonBytes, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}
	encoded := base64.StdEncoding.EncodeToString(jsonBytes)

	var sb strings.Builder

	// Sentinel and embedded payload.
	sb.WriteString("<!-- studyhall-bundle-version: 1 -->\n")
	fmt.Fprintf(&sb, "<!-- studyhall-data: %s -->\n\n", encoded)

	// Title.
	fmt.Fprintf(&sb, "# Study Session — %s — %s\n\n",
		bundle.Session.Subject,
		bundle.Session.EndTime.Format("2006-01-02 15:04:05 MST"),
	)

	// ## Summary
	sb.WriteString("## Summary\n\n")
	fmt.Fprintf(&sb, "- Duration: %s\n", bundle.Session.Duration)
	fmt.Fprintf(&sb, "- Timer mode: %s\n", bundle.Session.TimerMode)
	if bundle.Session.Author != "" {
		fmt.Fprintf(&sb, "- Author: %s\n", bundle.Session.Author)
	}
	sb.WriteString("\n")

	// The notebook section is the tree outline with note bodies inline.
	sb.WriteString("## Notebook\n\n")
	for _, root := range bundle.Tree {
		r.renderNode(&sb, root, 0, bundle.Content)
	}
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}

// headingPrefix maps tree depth to a markdown heading level, capped at h6.
func headingPrefix(depth int) string {
	level := depth + 2
	if level > 6 {
		level = 6
	}
	return strings.Repeat("#", level)
}

func (r *MarkdownRenderer) renderNode(sb *strings.Builder, n *notebook.Node, depth int, content notebook.ContentMap) {
	if n.Type == notebook.TypeNote {
		fmt.Fprintf(sb, "%s 📝 %s\n\n", headingPrefix(depth), n.Name)
		body := content[n.ID]
		if strings.TrimSpace(body) == "" {
			sb.WriteString("_Empty note._\n\n")
		} else {
			sb.WriteString(body)
			if !strings.HasSuffix(body, "\n") {
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		}
	} else {
		fmt.Fprintf(sb, "%s %s\n\n", headingPrefix(depth), n.Name)
	}
	for _, c := range n.Children {
		r.renderNode(sb, c, depth+1, content)
	}
}
