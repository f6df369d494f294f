package sentence

import (
	"fmt"
)

// NoRelation is the relation label of a record whose subject and object are
// not related.
const NoRelation = "no_relation"

// Record is one annotated sentence of a partition file.
//
// The subject and object spans are inclusive token index ranges. The
// stanford_* tag sequences have one entry per token.
type Record struct {
	Id    string `json:"id,omitempty"`
	DocId string `json:"docid,omitempty"`

	// The unmodified words of the sentence
	Tokens []string `json:"token"`

	SubjStart *int `json:"subj_start"`
	SubjEnd   *int `json:"subj_end"`
	ObjStart  *int `json:"obj_start"`
	ObjEnd    *int `json:"obj_end"`

	// Entity types, e.g. PERSON, ORGANIZATION
	SubjType string `json:"subj_type"`
	ObjType  string `json:"obj_type"`

	Pos    []string `json:"stanford_pos"`
	Ner    []string `json:"stanford_ner"`
	Deprel []string `json:"stanford_deprel"`

	Relation string `json:"relation"`
}

// Partition is the ordered list of records of one data split (train, dev,
// test).
type Partition []Record

// SchemaError reports a record with missing fields or out of range spans.
type SchemaError struct {
	// Index is the position of the record in its partition, -1 if unknown
	Index int

	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("schema error: field %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("schema error: record %d: field %s: %s", e.Index, e.Field, e.Reason)
}

// Validate checks that all required fields are present, that the tag
// sequences are aligned with the tokens and that both spans satisfy
// 0 <= start <= end < len(tokens).
func (r Record) Validate() error {
	if len(r.Tokens) == 0 {
		return &SchemaError{Index: -1, Field: "token", Reason: "missing or empty"}
	}

	tags := []struct {
		name string
		seq  []string
	}{
		{"stanford_pos", r.Pos},
		{"stanford_ner", r.Ner},
		{"stanford_deprel", r.Deprel},
	}
	for _, tag := range tags {
		if tag.seq == nil {
			return &SchemaError{Index: -1, Field: tag.name, Reason: "missing"}
		}
		if len(tag.seq) != len(r.Tokens) {
			return &SchemaError{Index: -1, Field: tag.name, Reason: fmt.Sprintf("length %d, want %d", len(tag.seq), len(r.Tokens))}
		}
	}

	if r.SubjType == "" {
		return &SchemaError{Index: -1, Field: "subj_type", Reason: "missing"}
	}
	if r.ObjType == "" {
		return &SchemaError{Index: -1, Field: "obj_type", Reason: "missing"}
	}
	if r.Relation == "" {
		return &SchemaError{Index: -1, Field: "relation", Reason: "missing"}
	}

	if err := checkSpan("subj", r.SubjStart, r.SubjEnd, len(r.Tokens)); err != nil {
		return err
	}
	return checkSpan("obj", r.ObjStart, r.ObjEnd, len(r.Tokens))
}

func checkSpan(prefix string, start, end *int, length int) error {
	if start == nil {
		return &SchemaError{Index: -1, Field: prefix + "_start", Reason: "missing"}
	}
	if end == nil {
		return &SchemaError{Index: -1, Field: prefix + "_end", Reason: "missing"}
	}

	if *start < 0 || *start > *end || *end >= length {
		return &SchemaError{
			Index:  -1,
			Field:  prefix + "_start",
			Reason: fmt.Sprintf("span [%d, %d] out of range for %d tokens", *start, *end, length),
		}
	}

	return nil
}

// SubjSpan returns the inclusive subject bounds. It must only be called on a
// validated record.
func (r Record) SubjSpan() (int, int) {
	return *r.SubjStart, *r.SubjEnd
}

// ObjSpan returns the inclusive object bounds.
func (r Record) ObjSpan() (int, int) {
	return *r.ObjStart, *r.ObjEnd
}
