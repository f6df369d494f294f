package label

import (
	"fmt"
	"sort"
)

// Curriculum is the label view of one stage: how a triple projects to a
// label, and which relations count as correct for that label.
type Curriculum struct {
	Stage Stage

	label   func(Triple) (string, bool)
	members map[string][]int
}

// Curriculum selects the label bundle of a stage.
func (h *Hierarchy) Curriculum(stage Stage) (Curriculum, error) {
	c := Curriculum{Stage: stage}

	switch stage {
	case Binary:
		c.label = byRelation(h.binary.reverse)
		c.members = h.binary.members

	case SubjType:
		c.label = byRelation(h.subjType.reverse)
		c.members = h.subjType.members

	case SubjObjType:
		c.label = h.SubjObjLabelOf
		c.members = map[string][]int{}
		for lbl, triples := range h.subjObj {
			c.members[lbl] = uniqueRelations(triples)
		}
		// Closed world triples map to no_relation even when no sample does.
		if !containsInt(c.members[NoRelation], h.NoRelationId()) {
			c.members[NoRelation] = append(c.members[NoRelation], h.NoRelationId())
			sort.Ints(c.members[NoRelation])
		}

	case Full:
		c.label = func(t Triple) (string, bool) {
			if t.Rel < 0 || t.Rel >= len(h.relations) {
				return "", false
			}
			return h.relations[t.Rel], true
		}
		c.members = make(map[string][]int, len(h.relations))
		for id, name := range h.relations {
			c.members[name] = []int{id}
		}

	default:
		return Curriculum{}, &UnknownLabelError{Stage: stage.String()}
	}

	return c, nil
}

// Label returns the curriculum label of a triple.
func (c Curriculum) Label(t Triple) (string, error) {
	lbl, ok := c.label(t)
	if !ok {
		return "", fmt.Errorf("%s curriculum: no label for triple %v", c.Stage, t)
	}
	return lbl, nil
}

// Members returns the sorted relation ids grouped under a label.
func (c Curriculum) Members(label string) []int {
	return append([]int(nil), c.members[label]...)
}

// Labels returns the labels of the stage, sorted.
func (c Curriculum) Labels() []string {
	labels := make([]string, 0, len(c.members))
	for l := range c.members {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Activated returns the relation ids that count as correct for a triple at
// this stage: every relation sharing its label.
func (c Curriculum) Activated(t Triple) ([]int, error) {
	lbl, err := c.Label(t)
	if err != nil {
		return nil, err
	}
	return c.Members(lbl), nil
}

func byRelation(reverse map[int]string) func(Triple) (string, bool) {
	return func(t Triple) (string, bool) {
		lbl, ok := reverse[t.Rel]
		return lbl, ok
	}
}

func uniqueRelations(triples []Triple) []int {
	seen := map[int]bool{}
	var ids []int
	for _, t := range triples {
		if !seen[t.Rel] {
			seen[t.Rel] = true
			ids = append(ids, t.Rel)
		}
	}
	sort.Ints(ids)
	return ids
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
