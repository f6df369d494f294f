package query

import (
	"bytes"
	"errors"
	"testing"

	"github.com/revelaction/relbatch/label"
	"github.com/revelaction/relbatch/sample"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()

	samples := []sample.Sample{
		{Relation: "per:title", SubjType: 10, ObjType: 20, SubjTypeName: "SUBJ-PERSON", ObjTypeName: "OBJ-TITLE"},
		{Relation: "per:employee_of", SubjType: 10, ObjType: 30, SubjTypeName: "SUBJ-PERSON", ObjTypeName: "OBJ-ORGANIZATION"},
		{Relation: "org:founded_by", SubjType: 11, ObjType: 40, SubjTypeName: "SUBJ-ORGANIZATION", ObjTypeName: "OBJ-PERSON"},
		{Relation: label.NoRelation, SubjType: 10, ObjType: 20, SubjTypeName: "SUBJ-PERSON", ObjTypeName: "OBJ-TITLE"},
	}

	b := label.NewBuilder(false)
	b.Add(samples, true)
	h, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	hd, err := NewHandler(h, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return hd
}

func TestLookupAllStages(t *testing.T) {
	h := testHandler(t)

	answers, err := h.Lookup("per:title")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if len(answers) != 4 {
		t.Fatalf("expected 4 answers, got %d", len(answers))
	}

	want := map[label.Stage]string{
		label.Full:        "per:title",
		label.Binary:      label.HasRelation,
		label.SubjType:    label.PerRelation,
		label.SubjObjType: "SUBJ-PERSON:OBJ-TITLE",
	}
	for _, a := range answers {
		if a.Label != want[a.Stage] {
			t.Errorf("stage %s: expected label %q, got %q", a.Stage, want[a.Stage], a.Label)
		}
	}
}

func TestLookupStage(t *testing.T) {
	h := testHandler(t)

	answers, err := h.Lookup("subj_type per:employee_of")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if len(answers) != 1 {
		t.Fatalf("expected 1 answer, got %d", len(answers))
	}
	a := answers[0]
	if a.Label != label.PerRelation {
		t.Fatalf("expected %s, got %s", label.PerRelation, a.Label)
	}
	if len(a.Siblings) != 2 {
		t.Fatalf("expected 2 siblings, got %v", a.Siblings)
	}
}

func TestLookupErrors(t *testing.T) {
	h := testHandler(t)

	if _, err := h.Lookup("per:unknown"); err == nil {
		t.Error("expected error for unknown relation")
	}

	_, err := h.Lookup("coarse per:title")
	var ule *label.UnknownLabelError
	if !errors.As(err, &ule) {
		t.Errorf("expected UnknownLabelError, got %v", err)
	}

	if _, err := h.Lookup("   "); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestSuggest(t *testing.T) {
	h := testHandler(t)

	if s := h.suggest(""); len(s) != 0 {
		t.Fatalf("expected no suggestions, got %v", s)
	}

	s := h.suggest("per:")
	if len(s) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", s)
	}

	s = h.suggest("subj")
	if len(s) != 2 {
		t.Fatalf("expected subj_type and subj_obj_type, got %v", s)
	}

	s = h.suggest("full org")
	if len(s) != 1 || s[0].Text != "org:founded_by" {
		t.Fatalf("expected org:founded_by, got %v", s)
	}
}
