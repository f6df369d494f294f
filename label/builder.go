package label

import (
	"fmt"
	"sort"
	"strings"

	"github.com/revelaction/relbatch/sample"
	sent "github.com/revelaction/relbatch/sentence"
)

// Group labels of the binary and subject type stages.
const (
	NoRelation  = sent.NoRelation
	HasRelation = "has_relation"
	PerRelation = "per:relation"
	OrgRelation = "org:relation"
)

// Triple is the canonical (subject type, relation, object type) key.
type Triple struct {
	Subj int
	Rel  int
	Obj  int
}

// Pair is an entity type pair.
type Pair struct {
	Subj int
	Obj  int
}

// nameTriple is a Triple before relation ids are final.
type nameTriple struct {
	subj int
	rel  string
	obj  int
}

// Builder collects relation names, groupings and the entity pair graph from
// parsed samples. Build freezes them into a Hierarchy.
type Builder struct {
	relationMasking bool

	// positive relation names in first occurrence order
	positives []string
	seen      map[string]bool

	subjects map[int]bool
	objects  map[int]bool

	// entity token of every subject and object type id, and the first id
	// seen with two tokens
	subjNames map[int]string
	objNames  map[int]string
	err       error

	binary   map[string]map[string]bool
	subjType map[string]map[string]bool
	subjObj  map[string]map[nameTriple]bool

	graph map[Pair]map[string]bool
}

func NewBuilder(relationMasking bool) *Builder {
	return &Builder{
		relationMasking: relationMasking,
		seen:            map[string]bool{},
		subjects:        map[int]bool{},
		objects:         map[int]bool{},
		subjNames:       map[int]string{},
		objNames:        map[int]string{},
		binary:          map[string]map[string]bool{},
		subjType:        map[string]map[string]bool{},
		subjObj:         map[string]map[nameTriple]bool{},
		graph:           map[Pair]map[string]bool{},
	}
}

// Add observes the samples of a partition in order. When graph is true, and
// relation masking is enabled, the entity pairs of the samples feed the
// relation graph; only the training partition should do so.
func (b *Builder) Add(samples []sample.Sample, graph bool) {
	for _, s := range samples {
		name := s.Relation
		if name != NoRelation && !b.seen[name] {
			b.seen[name] = true
			b.positives = append(b.positives, name)
		}

		b.subjects[s.SubjType] = true
		b.objects[s.ObjType] = true
		b.addTypeName(b.subjNames, s.SubjType, s.SubjTypeName)
		b.addTypeName(b.objNames, s.ObjType, s.ObjTypeName)

		if name == NoRelation {
			addTo(b.binary, NoRelation, name)
		} else {
			addTo(b.binary, HasRelation, name)
		}

		// "per" is checked before "org", on the possibly typed name.
		switch {
		case strings.Contains(name, "per"):
			addTo(b.subjType, PerRelation, name)
		case strings.Contains(name, "org"):
			addTo(b.subjType, OrgRelation, name)
		default:
			addTo(b.subjType, NoRelation, name)
		}

		t := nameTriple{subj: s.SubjType, rel: name, obj: s.ObjType}
		if name != NoRelation {
			addTo(b.subjObj, SubjObjLabel(s.SubjTypeName, s.ObjTypeName), t)
		} else {
			addTo(b.subjObj, NoRelation, t)
		}

		if b.relationMasking && graph {
			addTo(b.graph, Pair{Subj: s.SubjType, Obj: s.ObjType}, name)
		}
	}
}

func (b *Builder) addTypeName(names map[int]string, id int, name string) {
	prev, ok := names[id]
	if !ok {
		names[id] = name
		return
	}
	if prev != name && b.err == nil {
		b.err = &InvariantViolation{Msg: fmt.Sprintf("entity type id %d used by %q and %q", id, prev, name)}
	}
}

// SubjObjLabel is the subject-object type label of an entity token pair,
// e.g. "SUBJ-PERSON:OBJ-TITLE".
func SubjObjLabel(subjToken, objToken string) string {
	return subjToken + ":" + objToken
}

func addTo[K comparable, V comparable](m map[K]map[V]bool, key K, v V) {
	set, ok := m[key]
	if !ok {
		set = map[V]bool{}
		m[key] = set
	}
	set[v] = true
}

// Build assigns relation ids, derives the reverse maps and closes the
// subject-object type map over all subject × relation × object triples.
//
// Positive relations are numbered in first occurrence order and
// no_relation always takes the last id, whether it was observed or not.
func (b *Builder) Build() (*Hierarchy, error) {
	if b.err != nil {
		return nil, b.err
	}

	h := &Hierarchy{
		relIds:    map[string]int{},
		typeNames: make(map[int]string, len(b.subjNames)+len(b.objNames)),
	}
	for id, name := range b.objNames {
		h.typeNames[id] = name
	}
	for id, name := range b.subjNames {
		h.typeNames[id] = name
	}

	for _, name := range b.positives {
		h.relIds[name] = len(h.relations)
		h.relations = append(h.relations, name)
	}
	h.relIds[NoRelation] = len(h.relations)
	h.relations = append(h.relations, NoRelation)

	if id := h.relIds[NoRelation]; id != len(h.relations)-1 {
		return nil, &InvariantViolation{Msg: fmt.Sprintf("no_relation has id %d, want last index %d", id, len(h.relations)-1)}
	}

	noRel := h.NoRelationId()

	h.subjects = sortedKeys(b.subjects)
	h.objects = sortedKeys(b.objects)

	h.binary = newGrouping()
	for lbl, names := range b.binary {
		for name := range names {
			h.binary.add(lbl, h.relIds[name])
		}
	}
	h.binary.add(NoRelation, noRel)

	h.subjType = newGrouping()
	for lbl, names := range b.subjType {
		for name := range names {
			h.subjType.add(lbl, h.relIds[name])
		}
	}
	h.subjType.add(NoRelation, noRel)

	h.subjObj = map[string][]Triple{}
	h.subjObjRev = map[Triple]string{}
	for lbl, triples := range b.subjObj {
		for nt := range triples {
			t := Triple{Subj: nt.subj, Rel: h.relIds[nt.rel], Obj: nt.obj}
			if prev, ok := h.subjObjRev[t]; ok && prev != lbl {
				return nil, &InvariantViolation{Msg: fmt.Sprintf("triple %v labelled both %q and %q", t, prev, lbl)}
			}
			h.subjObj[lbl] = append(h.subjObj[lbl], t)
			h.subjObjRev[t] = lbl
		}
		sortTriples(h.subjObj[lbl])
	}

	unused := unusedTriples(h.subjects, len(h.relations), h.objects, h.subjObjRev)
	if err := addUnusedTriples(unused, h.subjObjRev); err != nil {
		return nil, err
	}

	if b.relationMasking {
		h.graph = map[Pair][]int{}
		for pair, names := range b.graph {
			ids := make([]int, 0, len(names))
			for name := range names {
				ids = append(ids, h.relIds[name])
			}
			sort.Ints(ids)
			h.graph[pair] = ids
		}
	}

	h.binary.freeze()
	h.subjType.freeze()

	return h, nil
}

// unusedTriples returns the triples of the subjects × relations × objects
// product that are not keys of observed.
func unusedTriples(subjects []int, numRelations int, objects []int, observed map[Triple]string) []Triple {
	var unused []Triple
	for _, s := range subjects {
		for r := 0; r < numRelations; r++ {
			for _, o := range objects {
				t := Triple{Subj: s, Rel: r, Obj: o}
				if _, ok := observed[t]; !ok {
					unused = append(unused, t)
				}
			}
		}
	}
	return unused
}

// addUnusedTriples maps every unused triple to no_relation. A triple that is
// already mapped means the unused set was computed wrongly.
func addUnusedTriples(unused []Triple, mappings map[Triple]string) error {
	for _, t := range unused {
		if lbl, ok := mappings[t]; ok {
			return &InvariantViolation{Msg: fmt.Sprintf("unused triple %v already mapped to %q", t, lbl)}
		}
		mappings[t] = NoRelation
	}
	return nil
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortTriples(ts []Triple) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Subj != ts[j].Subj {
			return ts[i].Subj < ts[j].Subj
		}
		if ts[i].Rel != ts[j].Rel {
			return ts[i].Rel < ts[j].Rel
		}
		return ts[i].Obj < ts[j].Obj
	})
}
