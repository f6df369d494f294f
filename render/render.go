package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const DefaultFormat = "text"

var (
	Red       = "\033[1;31m"
	Green     = "\033[1;32m"
	Yellow    = "\033[0;33m"
	Purple    = "\033[1;34m"
	Teal      = "\033[1;36m"
	Gray      = "\033[0;37m"
	Off       = "\033[0m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
)

func SupportedFormats() []string {
	return []string{"text", "json", "yaml"}
}

// Viewer renders the views of a corpus.
type Viewer interface {
	Hierarchy(v HierarchyView) error
	Batches(v []BatchView) error
	Stats(v StatsView) error
}

// New returns the Viewer of a format.
func New(format string, w io.Writer, hasColor bool) (Viewer, error) {
	switch format {
	case "text", "":
		return &Renderer{W: w, HasColor: hasColor}, nil
	case "json":
		return NewJSONRenderer(w), nil
	case "yaml":
		return NewYAMLRenderer(w), nil
	}
	return nil, fmt.Errorf("unknown format %q, supported: %s", format, strings.Join(SupportedFormats(), ", "))
}

// Renderer writes human readable, optionally colored, text.
type Renderer struct {
	W        io.Writer
	HasColor bool
}

var _ Viewer = (*Renderer)(nil)

func (r *Renderer) color(c, s string) string {
	if !r.HasColor {
		return s
	}
	return c + s + Off
}

func (r *Renderer) Hierarchy(v HierarchyView) error {
	fmt.Fprintf(r.W, "%s %d (no_relation %d)\n", r.color(Teal, "relations"), v.NumRelations, v.NoRelationId)
	for _, rel := range v.Relations {
		fmt.Fprintf(r.W, "  %s %s\n", r.color(Grey256, fmt.Sprintf("%3d", rel.Id)), rel.Name)
	}

	fmt.Fprintf(r.W, "%s %s\n", r.color(Teal, "subjects"), strings.Join(v.Subjects, " "))
	fmt.Fprintf(r.W, "%s %s\n", r.color(Teal, "objects"), strings.Join(v.Objects, " "))

	for _, s := range v.Stages {
		fmt.Fprintf(r.W, "%s %s (%d labels)\n", r.color(Teal, "stage"), r.color(Yellow256, s.Stage), len(s.Groups))
		for _, g := range s.Groups {
			fmt.Fprintf(r.W, "  %s %s\n", r.color(Green256, g.Label), strings.Join(g.Relations, " "))
		}
	}

	if len(v.Graph) > 0 {
		fmt.Fprintf(r.W, "%s %d pairs\n", r.color(Teal, "graph"), len(v.Graph))
		for _, p := range v.Graph {
			fmt.Fprintf(r.W, "  %s:%s %s\n", p.Subj, p.Obj, strings.Join(p.Relations, " "))
		}
	}

	return nil
}

func (r *Renderer) Batches(views []BatchView) error {
	for _, v := range views {
		names := make([]string, 0, len(v.Shapes))
		for n := range v.Shapes {
			names = append(names, n)
		}
		sort.Strings(names)

		shapes := make([]string, len(names))
		for i, n := range names {
			s := v.Shapes[n]
			shapes[i] = fmt.Sprintf("%s[%dx%d]", n, s[0], s[1])
		}

		fmt.Fprintf(r.W, "%s size %d max_len %d %s\n",
			r.color(Yellow256, fmt.Sprintf("batch %d", v.Index)), v.Size, v.MaxLen, r.color(Gray, strings.Join(shapes, " ")))
	}
	return nil
}

func (r *Renderer) Stats(v StatsView) error {
	fmt.Fprintf(r.W, "Num records %d, num tokens per record %d, no_relation %d\n", v.NumRecords, v.TokensPerRecordMean, v.NumNoRelation)
	for _, c := range v.Relations {
		fmt.Fprintf(r.W, "  %s %s\n", r.color(Green, fmt.Sprintf("%6d", c.Count)), c.Key)
	}
	return nil
}
