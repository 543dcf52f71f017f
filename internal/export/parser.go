package export

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// BundleParser deserializes an exported session file back into structured data.
type BundleParser interface {
	Parse(data []byte) (*Bundle, error)
}

// JSONParser parses a JSON-encoded Bundle.
type JSONParser struct{}

func (p *JSONParser) Parse(data []byte) (*Bundle, error) {
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse JSON bundle: %w", err)
	}
	return &bundle, nil
}

// MarkdownParser parses a Markdown-rendered Bundle by extracting the embedded
// base64 JSON payload from the sentinel comments.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(data []byte) (*Bundle, error) {
	content := string(data)

	// Require the version sentinel.
	if !strings.Contains(content, "<!-- studyhall-bundle-version: 1 -->") {
		return nil, fmt.Errorf("not a valid studyhall bundle: missing version sentinel")
	}

	// Extract the base64 payload from <!-- studyhall-data: <base64> -->.
	const prefix = "<!-- studyhall-data: "
	const suffix = " -->"
	start := strings.Index(content, prefix)
	if start == -1 {
		return nil, fmt.Errorf("not a valid studyhall bundle: missing data payload")
	}
	start += len(prefix)
	end := strings.Index(content[start:], suffix)
	if end == -1 {
		return nil, fmt.Errorf("not a valid studyhall bundle: malformed data payload")
	}
	encoded := content[start : start+end]

	// Base64-decode the payload.
	jsonBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("not a valid studyhall bundle: corrupted base64 payload: %w", err)
	}

	// Unmarshal the JSON into a Bundle.
	var bundle Bundle
	if err := json.Unmarshal(jsonBytes, &bundle); err != nil {
		return nil, fmt.Errorf("not a valid studyhall bundle: failed to parse embedded JSON: %w", err)
	}

	return &bundle, nil
}
