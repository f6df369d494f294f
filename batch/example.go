package batch

import (
	"github.com/revelaction/relbatch/label"
)

// Supplemental field names of a materialized batch.
const (
	FieldTriple          = "triple"
	FieldRelationMasking = "relation_masking"
	FieldBinaryLabels    = "binary_labels"
)

// Example is a sample enriched for one iterator: its base sequences, the
// relations activated at the iterator's curriculum stage and the optional
// supplemental fields.
type Example struct {
	Tokens        []int
	Pos           []int
	Ner           []int
	Deprel        []int
	SubjPositions []int
	ObjPositions  []int

	// Activated are the relation ids counted as correct at the curriculum
	// stage.
	Activated []int

	// Label is the gold curriculum label.
	Label string

	Triple label.Triple

	// KnownRelations are the relations observed for the entity pair of the
	// example. nil means relation masking is off.
	KnownRelations []int

	HasBinaryLabel bool
	BinaryLabel    int
}

// fields returns the supplemental fields present in the example.
func (e Example) fields() []string {
	f := []string{FieldTriple}
	if e.KnownRelations != nil {
		f = append(f, FieldRelationMasking)
	}
	if e.HasBinaryLabel {
		f = append(f, FieldBinaryLabels)
	}
	return f
}

// base field indices of a group
const (
	fieldTokens = iota
	fieldPos
	fieldNer
	fieldDeprel
	fieldSubjPositions
	fieldObjPositions
	fieldActivated
	numBaseFields
)

// group is one unmaterialized batch, its fields as parallel sequences.
type group struct {
	base [numBaseFields][][]int

	triples []label.Triple
	known   [][]int
	binary  []int
}

func (g *group) size() int {
	return len(g.base[fieldTokens])
}

func newGroup(examples []Example, fields []string) group {
	var g group
	for _, e := range examples {
		g.base[fieldTokens] = append(g.base[fieldTokens], e.Tokens)
		g.base[fieldPos] = append(g.base[fieldPos], e.Pos)
		g.base[fieldNer] = append(g.base[fieldNer], e.Ner)
		g.base[fieldDeprel] = append(g.base[fieldDeprel], e.Deprel)
		g.base[fieldSubjPositions] = append(g.base[fieldSubjPositions], e.SubjPositions)
		g.base[fieldObjPositions] = append(g.base[fieldObjPositions], e.ObjPositions)
		g.base[fieldActivated] = append(g.base[fieldActivated], e.Activated)
	}

	for _, f := range fields {
		for _, e := range examples {
			switch f {
			case FieldTriple:
				g.triples = append(g.triples, e.Triple)
			case FieldRelationMasking:
				g.known = append(g.known, e.KnownRelations)
			case FieldBinaryLabels:
				g.binary = append(g.binary, e.BinaryLabel)
			}
		}
	}

	return g
}
