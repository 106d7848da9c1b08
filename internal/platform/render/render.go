// Package render produces result documents from examination snapshots when no
// file is uploaded. The document internals are intentionally minimal; callers
// only depend on the Renderer interface.
package render

import (
	"bytes"
	"fmt"
	"time"
)

// Renderer turns a snapshot of examination data into a document.
type Renderer interface {
	Render(kind string, snapshot map[string]interface{}) ([]byte, string, error)
}

// Placeholder renders a plain-text stand-in document. It exists so the
// upload fallback path always has bytes to store.
type Placeholder struct{}

func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Render returns the document bytes and their content type.
func (Placeholder) Render(kind string, snapshot map[string]interface{}) ([]byte, string, error) {
	if kind == "" {
		return nil, "", fmt.Errorf("render: kind is required")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\ngenerated %s\n\n", kind, time.Now().UTC().Format(time.RFC3339))
	for k, v := range snapshot {
		fmt.Fprintf(&buf, "%s: %v\n", k, v)
	}
	return buf.Bytes(), "text/plain; charset=utf-8", nil
}
