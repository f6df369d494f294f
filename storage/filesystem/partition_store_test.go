package filesystem

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	sent "github.com/revelaction/relbatch/sentence"
)

func intp(i int) *int { return &i }

func partition() sent.Partition {
	return sent.Partition{{
		Id:        "a",
		Tokens:    []string{"Bill", "is", "CEO"},
		SubjStart: intp(0), SubjEnd: intp(0),
		ObjStart: intp(2), ObjEnd: intp(2),
		SubjType: "PERSON", ObjType: "TITLE",
		Pos:      []string{"NNP", "VBZ", "NN"},
		Ner:      []string{"PERSON", "O", "TITLE"},
		Deprel:   []string{"nsubj", "cop", "ROOT"},
		Relation: "per:title",
	}}
}

func TestPartitionStoreWriteRead(t *testing.T) {
	dir := t.TempDir()
	ps := NewPartitionStore(dir)

	if err := ps.Write("train", partition()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := ps.Write("dev", partition()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// ignored
	if err := os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	names, err := ps.Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"dev", "train"}) {
		t.Fatalf("expected [dev train], got %v", names)
	}

	got, err := ps.Read("train")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, partition()) {
		t.Errorf("expected %+v, got %+v", partition(), got)
	}
}

func TestPartitionStoreReadMissing(t *testing.T) {
	if _, err := NewPartitionStore(t.TempDir()).Read("train"); err == nil {
		t.Fatal("expected error for missing partition")
	}
}
