package sample

import (
	"fmt"
	"strings"

	sent "github.com/revelaction/relbatch/sentence"
	"github.com/revelaction/relbatch/vocab"
)

// Vocabulary is the lookup the parser needs. Out of vocabulary entries map
// to vocab.UnkId.
type Vocabulary interface {
	Size() int
	WordId(w string) (int, bool)
	PosId(tag string) (int, bool)
	NerId(tag string) (int, bool)
	DeprelId(tag string) (int, bool)
}

// Sample is the normalized, id mapped form of a Record.
//
// Relation is the label name (namespaced by entity types in typed mode).
// RelationId and Triple are only valid after the sample has been bound to a
// label hierarchy.
type Sample struct {
	Tokens        []int
	Pos           []int
	Ner           []int
	Deprel        []int
	SubjPositions []int
	ObjPositions  []int

	Relation string

	// SubjType and ObjType are the vocabulary ids of the SUBJ-<type> and
	// OBJ-<type> entity tokens. Entity tokens missing from the vocabulary
	// get ids past its end, one per token.
	SubjType     int
	ObjType      int
	SubjTypeName string
	ObjTypeName  string

	RelationId int
	Bound      bool
}

// Len is the sentence length in tokens.
func (s Sample) Len() int {
	return len(s.Tokens)
}

// IsNoRelation reports whether the sample belongs to the no_relation class.
func (s Sample) IsNoRelation() bool {
	return s.Relation == sent.NoRelation
}

type Options struct {
	// Lower lowercases tokens before lookup. Entity tokens are not lowered.
	Lower bool

	// TypedRelations namespaces positive relations as
	// SUBJTYPE:relation:OBJTYPE.
	TypedRelations bool
}

// Parser is not safe for concurrent use: it numbers unknown entity tokens
// as it meets them.
type Parser struct {
	vocab Vocabulary
	opts  Options

	// entity tokens missing from the vocabulary
	entities map[string]int
}

func NewParser(v Vocabulary, opts Options) *Parser {
	return &Parser{vocab: v, opts: opts, entities: map[string]int{}}
}

// Parse converts one record into a Sample. It fails with a
// *sentence.SchemaError if the record is malformed.
func (p *Parser) Parse(r sent.Record) (Sample, error) {
	if err := r.Validate(); err != nil {
		return Sample{}, err
	}

	tokens := make([]string, len(r.Tokens))
	for i, t := range r.Tokens {
		if p.opts.Lower {
			t = strings.ToLower(t)
		}
		tokens[i] = t
	}

	subjToken := vocab.SubjPrefix + r.SubjType
	objToken := vocab.ObjPrefix + r.ObjType

	ss, se := r.SubjSpan()
	os, oe := r.ObjSpan()
	for i := ss; i <= se; i++ {
		tokens[i] = subjToken
	}
	for i := os; i <= oe; i++ {
		tokens[i] = objToken
	}

	s := Sample{
		Tokens:        mapToIds(tokens, p.vocab.WordId),
		Pos:           mapToIds(r.Pos, p.vocab.PosId),
		Ner:           mapToIds(r.Ner, p.vocab.NerId),
		Deprel:        mapToIds(r.Deprel, p.vocab.DeprelId),
		SubjPositions: Positions(ss, se, len(tokens)),
		ObjPositions:  Positions(os, oe, len(tokens)),
		Relation:      p.relationName(r),
		SubjType:      p.entityId(subjToken),
		ObjType:       p.entityId(objToken),
		SubjTypeName:  subjToken,
		ObjTypeName:   objToken,
	}

	return s, nil
}

// ParsePartition parses every record of a partition. The SchemaError of a
// failing record carries its index.
func (p *Parser) ParsePartition(part sent.Partition, cb func(i int)) ([]Sample, error) {
	samples := make([]Sample, 0, len(part))
	for i, r := range part {
		s, err := p.Parse(r)
		if err != nil {
			if se, ok := err.(*sent.SchemaError); ok {
				se.Index = i
			}
			return nil, err
		}

		samples = append(samples, s)
		if cb != nil {
			cb(i)
		}
	}

	return samples, nil
}

// entityId returns the vocabulary id of an entity token. A token missing
// from the vocabulary gets the next id past its end, in order of first
// occurrence, so two entity types never share an id.
func (p *Parser) entityId(token string) int {
	if id, ok := p.vocab.WordId(token); ok {
		return id
	}
	if id, ok := p.entities[token]; ok {
		return id
	}

	id := p.vocab.Size() + len(p.entities)
	p.entities[token] = id
	return id
}

func (p *Parser) relationName(r sent.Record) string {
	if !p.opts.TypedRelations || r.Relation == sent.NoRelation {
		return r.Relation
	}

	return fmt.Sprintf("%s:%s:%s", r.SubjType, r.Relation, r.ObjType)
}

// Positions returns the signed distance of every token to the inclusive span
// [start, end]: negative before the span, 0 inside and positive after.
func Positions(start, end, length int) []int {
	pos := make([]int, length)
	for i := range pos {
		switch {
		case i < start:
			pos[i] = i - start
		case i > end:
			pos[i] = i - end
		}
	}
	return pos
}

func mapToIds(names []string, fn func(string) (int, bool)) []int {
	ids := make([]int, len(names))
	for i, n := range names {
		ids[i] = lookup(n, fn)
	}
	return ids
}

func lookup(name string, fn func(string) (int, bool)) int {
	if id, ok := fn(name); ok {
		return id
	}
	return vocab.UnkId
}
