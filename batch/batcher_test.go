package batch

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/revelaction/relbatch/label"
	"github.com/revelaction/relbatch/vocab"
)

func example(tokens []int, rel int) Example {
	n := len(tokens)
	seq := func(v int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = v
		}
		return s
	}
	return Example{
		Tokens:        tokens,
		Pos:           seq(2),
		Ner:           seq(3),
		Deprel:        seq(4),
		SubjPositions: seq(0),
		ObjPositions:  seq(1),
		Activated:     []int{rel},
		Label:         "rel",
		Triple:        label.Triple{Subj: 10, Rel: rel, Obj: 20},
	}
}

func evalOpts(size, numRel int) Options {
	return Options{BatchSize: size, Eval: true, NumRelations: numRel}
}

func TestPaddingAndMask(t *testing.T) {
	examples := []Example{
		example([]int{5, 6, 7}, 0),
		example([]int{5, 6, 7, 8, 9}, 1),
	}

	b, err := New(examples, evalOpts(2, 2), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bt, err := b.Batch(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r, c := bt.Words.Dims(); r != 2 || c != 5 {
		t.Fatalf("expected 2x5 words, got %dx%d", r, c)
	}

	// longest first
	if !reflect.DeepEqual(bt.SentenceLengths, []int{5, 3}) {
		t.Errorf("SentenceLengths: got %v", bt.SentenceLengths)
	}
	if !reflect.DeepEqual(bt.OrigIdx, []int{1, 0}) {
		t.Errorf("OrigIdx: got %v", bt.OrigIdx)
	}

	if !reflect.DeepEqual(bt.Words.Row(1), []int64{5, 6, 7, vocab.PadId, vocab.PadId}) {
		t.Errorf("padded row: got %v", bt.Words.Row(1))
	}
	for j := 0; j < 5; j++ {
		if bt.Masks.At(0, j) {
			t.Errorf("mask (0, %d) set on a real token", j)
		}
		want := j >= 3
		if bt.Masks.At(1, j) != want {
			t.Errorf("mask (1, %d): got %t, want %t", j, bt.Masks.At(1, j), want)
		}
	}

	if bt.Pos.At(1, 4) != vocab.PadId || bt.Pos.At(1, 2) != 2 {
		t.Errorf("pos padding: got %v", bt.Pos.Row(1))
	}

	// activated follows the sort
	if bt.Activated.At(0, 1) != 1 || bt.Activated.At(1, 0) != 1 || bt.Activated.At(0, 0) != 0 {
		t.Errorf("activated rows not sorted with the batch")
	}

	if bt.Size() != 2 {
		t.Errorf("Size: got %d", bt.Size())
	}
}

func TestEvalKeepsOrder(t *testing.T) {
	var examples []Example
	for i := 0; i < 5; i++ {
		e := example([]int{5, 6}, 0)
		e.Label = string(rune('a' + i))
		examples = append(examples, e)
	}

	b, err := New(examples, evalOpts(2, 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.Len() != 3 || b.NumExamples() != 5 {
		t.Fatalf("expected 3 batches of 5 examples, got %d %d", b.Len(), b.NumExamples())
	}

	if !reflect.DeepEqual(b.Gold(), []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("Gold: got %v", b.Gold())
	}

	bt, err := b.Batch(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bt.Size() != 1 {
		t.Errorf("expected last batch of 1, got %d", bt.Size())
	}

	// equal lengths keep their order
	bt, _ = b.Batch(0)
	if !reflect.DeepEqual(bt.OrigIdx, []int{0, 1}) {
		t.Errorf("OrigIdx: got %v", bt.OrigIdx)
	}

	b.Shuffle()
	if !reflect.DeepEqual(b.Gold(), []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("Shuffle must not reorder an eval batcher, got %v", b.Gold())
	}

	if _, err := b.Batch(3); err == nil {
		t.Error("expected error for out of range batch")
	}
}

func TestRestore(t *testing.T) {
	examples := []Example{
		example([]int{5}, 0),
		example([]int{5, 6, 7}, 0),
		example([]int{5, 6}, 0),
	}

	b, err := New(examples, evalOpts(3, 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bt, _ := b.Batch(0)

	restored, err := Restore(bt.SentenceLengths, bt.OrigIdx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(restored, []int{1, 3, 2}) {
		t.Errorf("Restore: got %v", restored)
	}

	if _, err := Restore([]int{1}, []int{0, 1}); err == nil {
		t.Error("expected error for length mismatch")
	}
	if _, err := Restore([]int{1, 2}, []int{0, 0}); err == nil {
		t.Error("expected error for repeated index")
	}
}

func TestWordDropout(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	tokens := []int{5, vocab.UnkId, 7, 8}

	if got := WordDropout(tokens, 0, rng); !reflect.DeepEqual(got, tokens) {
		t.Errorf("p=0: got %v", got)
	}

	got := WordDropout(tokens, 1, rng)
	for i, id := range got {
		if id != vocab.UnkId {
			t.Errorf("p=1: token %d is %d", i, id)
		}
	}

	if tokens[0] != 5 {
		t.Error("WordDropout must not modify its input")
	}
}

func TestTrainingDropoutAndShuffle(t *testing.T) {
	var examples []Example
	for i := 0; i < 20; i++ {
		examples = append(examples, example([]int{5, 6, 7}, 0))
	}

	opts := Options{BatchSize: 4, WordDropout: 1, NumRelations: 1}
	b, err := New(examples, opts, rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = b.Each(func(i int, bt *Batch) error {
		rows, cols := bt.Words.Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if bt.Words.At(r, c) != vocab.UnkId {
					t.Fatalf("batch %d: expected UNK at (%d, %d)", i, r, c)
				}
			}
			// dropout touches words only
			if bt.Pos.At(r, 0) != 2 {
				t.Fatalf("batch %d: pos changed", i)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if examples[0].Tokens[0] != 5 {
		t.Error("examples must not be modified")
	}
}

func TestDropoutIndependentOfOrder(t *testing.T) {
	var examples []Example
	for i := 0; i < 12; i++ {
		examples = append(examples, example([]int{5, 6, 7, 8, 9, 10}, 0))
	}

	opts := Options{BatchSize: 4, WordDropout: 0.5, NumRelations: 1}
	b, err := New(examples, opts, rand.New(rand.NewPCG(3, 3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last, _ := b.Batch(2)
	if _, err := b.Batch(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, _ := b.Batch(2)

	if !reflect.DeepEqual(last.Words, again.Words) {
		t.Error("batch 2 differs between materializations")
	}
}

func TestSupplementalFields(t *testing.T) {
	e1 := example([]int{5, 6}, 0)
	e1.KnownRelations = []int{0, 2}
	e1.HasBinaryLabel = true
	e1.BinaryLabel = 0

	e2 := example([]int{5, 6, 7}, 2)
	e2.KnownRelations = []int{}
	e2.HasBinaryLabel = true
	e2.BinaryLabel = 2

	b, err := New([]Example{e1, e2}, evalOpts(2, 3), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(b.Fields(), []string{FieldTriple, FieldRelationMasking, FieldBinaryLabels}) {
		t.Fatalf("Fields: got %v", b.Fields())
	}

	bt, _ := b.Batch(0)

	triple := bt.Supplemental[FieldTriple].(*LongTensor)
	if !reflect.DeepEqual(triple.Row(0), []int64{10, 2, 20}) {
		t.Errorf("triple row 0: got %v", triple.Row(0))
	}

	masking := bt.Supplemental[FieldRelationMasking]
	if r, c := masking.Dims(); r != 2 || c != 3 {
		t.Fatalf("relation_masking: got %dx%d", r, c)
	}

	binary := bt.Supplemental[FieldBinaryLabels]
	if r, c := binary.Dims(); r != 2 || c != 2 {
		t.Fatalf("binary_labels: expected 2x2, got %dx%d", r, c)
	}
}

func TestNewErrors(t *testing.T) {
	good := example([]int{5, 6}, 0)

	misaligned := example([]int{5, 6}, 0)
	misaligned.Pos = []int{2}

	outOfRange := example([]int{5, 6}, 4)

	mixed := example([]int{5, 6}, 0)
	mixed.KnownRelations = []int{0}

	binary := example([]int{5, 6}, 0)
	binary.HasBinaryLabel = true

	tests := []struct {
		name     string
		examples []Example
		opts     Options
		index    int
	}{
		{"empty", nil, evalOpts(2, 2), -1},
		{"batch size", []Example{good}, evalOpts(0, 2), -1},
		{"no random source", []Example{good}, Options{BatchSize: 1, NumRelations: 2}, -1},
		{"misaligned", []Example{good, misaligned}, evalOpts(2, 2), 1},
		{"activated out of range", []Example{outOfRange}, evalOpts(2, 2), 0},
		{"mixed fields", []Example{good, mixed}, evalOpts(2, 2), 1},
		{"binary without positives", []Example{binary}, evalOpts(2, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.examples, tt.opts, nil)

			var bce *BatchConstructionError
			if !errors.As(err, &bce) {
				t.Fatalf("expected BatchConstructionError, got %v", err)
			}
			if bce.Example != tt.index {
				t.Errorf("expected example %d, got %d", tt.index, bce.Example)
			}
		})
	}
}
