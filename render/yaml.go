package render

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLRenderer writes views as YAML documents to a writer.
type YAMLRenderer struct {
	W io.Writer
}

func NewYAMLRenderer(w io.Writer) *YAMLRenderer {
	return &YAMLRenderer{W: w}
}

func (r *YAMLRenderer) encode(v any) error {
	enc := yaml.NewEncoder(r.W)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *YAMLRenderer) Hierarchy(v HierarchyView) error {
	return r.encode(v)
}

func (r *YAMLRenderer) Batches(v []BatchView) error {
	return r.encode(v)
}

func (r *YAMLRenderer) Stats(v StatsView) error {
	return r.encode(v)
}

var _ Viewer = (*YAMLRenderer)(nil)
