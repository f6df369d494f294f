package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/revelaction/relbatch/label"
	"github.com/revelaction/relbatch/sample"
	"github.com/revelaction/relbatch/stat"
)

// entity type ids used by the test samples
const (
	subjPerson = 10
	objTitle   = 20
	objCity    = 21
)

func word(id int) string {
	switch id {
	case subjPerson:
		return "SUBJ-PERSON"
	case objTitle:
		return "OBJ-TITLE"
	case objCity:
		return "OBJ-CITY"
	}
	return "<UNK>"
}

func testHierarchy(t *testing.T) *label.Hierarchy {
	t.Helper()

	samples := []sample.Sample{
		{Relation: "per:title", SubjType: subjPerson, ObjType: objTitle, SubjTypeName: "SUBJ-PERSON", ObjTypeName: "OBJ-TITLE"},
		{Relation: "per:city_of_birth", SubjType: subjPerson, ObjType: objCity, SubjTypeName: "SUBJ-PERSON", ObjTypeName: "OBJ-CITY"},
		{Relation: label.NoRelation, SubjType: subjPerson, ObjType: objTitle, SubjTypeName: "SUBJ-PERSON", ObjTypeName: "OBJ-TITLE"},
	}

	b := label.NewBuilder(true)
	b.Add(samples, true)
	h, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return h
}

func TestNewHierarchyView(t *testing.T) {
	v, err := NewHierarchyView(testHierarchy(t), word)
	if err != nil {
		t.Fatalf("NewHierarchyView: %v", err)
	}

	if v.NumRelations != 3 || v.NoRelationId != 2 {
		t.Fatalf("expected 3 relations with no_relation 2, got %d and %d", v.NumRelations, v.NoRelationId)
	}

	if len(v.Stages) != len(label.Stages()) {
		t.Fatalf("expected %d stages, got %d", len(label.Stages()), len(v.Stages))
	}

	if len(v.Graph) != 2 {
		t.Fatalf("expected 2 graph pairs, got %d", len(v.Graph))
	}
	if v.Graph[0].Subj != "SUBJ-PERSON" {
		t.Errorf("expected subject SUBJ-PERSON, got %s", v.Graph[0].Subj)
	}
}

func TestJSONRendererHierarchy(t *testing.T) {
	v, err := NewHierarchyView(testHierarchy(t), word)
	if err != nil {
		t.Fatalf("NewHierarchyView: %v", err)
	}

	var buf bytes.Buffer
	if err := NewJSONRenderer(&buf).Hierarchy(v); err != nil {
		t.Fatalf("Hierarchy: %v", err)
	}

	var got HierarchyView
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if got.Relations[2].Name != label.NoRelation {
		t.Errorf("expected last relation no_relation, got %s", got.Relations[2].Name)
	}
}

func TestJSONRendererBatchesEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONRenderer(&buf).Batches(nil); err != nil {
		t.Fatalf("Batches: %v", err)
	}

	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("expected empty array, got %q", buf.String())
	}
}

func TestYAMLRendererHierarchy(t *testing.T) {
	v, err := NewHierarchyView(testHierarchy(t), word)
	if err != nil {
		t.Fatalf("NewHierarchyView: %v", err)
	}

	var buf bytes.Buffer
	if err := NewYAMLRenderer(&buf).Hierarchy(v); err != nil {
		t.Fatalf("Hierarchy: %v", err)
	}

	var got HierarchyView
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if got.NoRelationId != 2 {
		t.Errorf("expected no_relation_id 2, got %d", got.NoRelationId)
	}
	if len(got.Stages) != 4 {
		t.Errorf("expected 4 stages, got %d", len(got.Stages))
	}
}

func TestRendererHierarchyNoColor(t *testing.T) {
	v, err := NewHierarchyView(testHierarchy(t), word)
	if err != nil {
		t.Fatalf("NewHierarchyView: %v", err)
	}

	var buf bytes.Buffer
	r := &Renderer{W: &buf}
	if err := r.Hierarchy(v); err != nil {
		t.Fatalf("Hierarchy: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no color codes")
	}
	for _, want := range []string{"stage full", "stage subj_obj_type", "per:relation", "SUBJ-PERSON:OBJ-TITLE"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestNewStatsViewSorted(t *testing.T) {
	s := stat.Stats{RelationDis: map[string]int{"b": 2, "a": 2, "c": 5}}
	v := NewStatsView(s)

	var keys []string
	for _, c := range v.Relations {
		keys = append(keys, c.Key)
	}
	if strings.Join(keys, ",") != "c,a,b" {
		t.Fatalf("expected c,a,b, got %v", keys)
	}
}

func TestNewUnknownFormat(t *testing.T) {
	if _, err := New("xml", &bytes.Buffer{}, false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
