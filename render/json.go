package render

import (
	"encoding/json"
	"io"
)

// JSONRenderer writes views as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

func (r *JSONRenderer) encode(v any) error {
	enc := json.NewEncoder(r.W)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *JSONRenderer) Hierarchy(v HierarchyView) error {
	return r.encode(v)
}

// Batches serializes the batch summaries as a JSON array.
func (r *JSONRenderer) Batches(v []BatchView) error {
	if v == nil {
		v = []BatchView{}
	}
	return r.encode(v)
}

func (r *JSONRenderer) Stats(v StatsView) error {
	return r.encode(v)
}

// compile-time interface check
var _ Viewer = (*JSONRenderer)(nil)
