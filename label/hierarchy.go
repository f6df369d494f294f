package label

import (
	"fmt"
	"sort"

	"github.com/revelaction/relbatch/sample"
)

// grouping is a label → relation ids map with its reverse.
type grouping struct {
	members map[string][]int
	reverse map[int]string
}

func newGrouping() *grouping {
	return &grouping{members: map[string][]int{}, reverse: map[int]string{}}
}

func (g *grouping) add(label string, rel int) {
	for _, r := range g.members[label] {
		if r == rel {
			return
		}
	}
	g.members[label] = append(g.members[label], rel)
	g.reverse[rel] = label
}

func (g *grouping) freeze() {
	for _, ids := range g.members {
		sort.Ints(ids)
	}
}

// Hierarchy is the relation id space and its curriculum groupings. It is
// read only once built and can be shared by any number of iterators.
type Hierarchy struct {
	relations []string
	relIds    map[string]int

	// observed entity type ids, sorted
	subjects []int
	objects  []int

	typeNames map[int]string

	binary   *grouping
	subjType *grouping

	subjObj    map[string][]Triple
	subjObjRev map[Triple]string

	// nil unless relation masking is enabled
	graph map[Pair][]int
}

// NumRelations is the size of the relation id space, no_relation included.
func (h *Hierarchy) NumRelations() int {
	return len(h.relations)
}

// NoRelationId is always the last relation id.
func (h *Hierarchy) NoRelationId() int {
	return len(h.relations) - 1
}

func (h *Hierarchy) RelationId(name string) (int, bool) {
	id, ok := h.relIds[name]
	return id, ok
}

func (h *Hierarchy) RelationName(id int) string {
	if id < 0 || id >= len(h.relations) {
		return ""
	}
	return h.relations[id]
}

// Relations returns the relation names indexed by id.
func (h *Hierarchy) Relations() []string {
	return append([]string(nil), h.relations...)
}

func (h *Hierarchy) Subjects() []int {
	return append([]int(nil), h.subjects...)
}

func (h *Hierarchy) Objects() []int {
	return append([]int(nil), h.objects...)
}

// TypeName returns the entity token of a type id, e.g. "SUBJ-PERSON", or
// "" for an id never observed.
func (h *Hierarchy) TypeName(id int) string {
	return h.typeNames[id]
}

// HasGraph reports whether the entity pair relation graph was built.
func (h *Hierarchy) HasGraph() bool {
	return h.graph != nil
}

// KnownRelations returns the relation ids observed between the pair in the
// training data, sorted. Pairs never observed have no known relations.
func (h *Hierarchy) KnownRelations(p Pair) []int {
	known := make([]int, len(h.graph[p]))
	copy(known, h.graph[p])
	return known
}

// Pairs returns the entity pairs of the relation graph.
func (h *Hierarchy) Pairs() []Pair {
	pairs := make([]Pair, 0, len(h.graph))
	for p := range h.graph {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Subj != pairs[j].Subj {
			return pairs[i].Subj < pairs[j].Subj
		}
		return pairs[i].Obj < pairs[j].Obj
	})
	return pairs
}

// Bind returns a copy of the sample carrying its relation id.
func (h *Hierarchy) Bind(s sample.Sample) (sample.Sample, error) {
	id, ok := h.relIds[s.Relation]
	if !ok {
		return sample.Sample{}, fmt.Errorf("relation %q not in label hierarchy", s.Relation)
	}

	s.RelationId = id
	s.Bound = true
	return s, nil
}

// BindAll binds every sample, returning new values.
func (h *Hierarchy) BindAll(samples []sample.Sample) ([]sample.Sample, error) {
	bound := make([]sample.Sample, len(samples))
	for i, s := range samples {
		b, err := h.Bind(s)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		bound[i] = b
	}
	return bound, nil
}

// TripleOf returns the canonical triple of a bound sample.
func TripleOf(s sample.Sample) Triple {
	return Triple{Subj: s.SubjType, Rel: s.RelationId, Obj: s.ObjType}
}

// SubjObjLabelOf returns the closed world subject-object label of a triple.
func (h *Hierarchy) SubjObjLabelOf(t Triple) (string, bool) {
	lbl, ok := h.subjObjRev[t]
	return lbl, ok
}
