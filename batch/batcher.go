package batch

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/revelaction/relbatch/label"
	"github.com/revelaction/relbatch/vocab"
)

type Options struct {
	BatchSize int

	// Eval keeps the example order and disables word dropout.
	Eval bool

	// WordDropout is the probability of replacing a known token id with
	// vocab.UnkId during training.
	WordDropout float64

	// NumRelations is the width of the multi-hot relation tensors. The last
	// relation id must be no_relation.
	NumRelations int
}

// Batcher groups examples into fixed size batches and materializes them on
// demand.
//
// A training Batcher shuffles its examples on creation and on every Shuffle
// call; an eval Batcher keeps them in input order and its batches are
// identical on every pass.
type Batcher struct {
	opts Options
	rng  *rand.Rand

	examples []Example
	fields   []string
	groups   []group

	// dropoutSeed is drawn on every shuffle; batch i drops words with a
	// source seeded by (dropoutSeed, i), so batches can be materialized in
	// any order with the same result.
	dropoutSeed uint64
}

// New validates the examples and groups them. The batcher owns a copy of the
// example slice; the examples themselves are never modified.
func New(examples []Example, opts Options, rng *rand.Rand) (*Batcher, error) {
	if opts.BatchSize < 1 {
		return nil, &BatchConstructionError{Example: -1, Reason: fmt.Sprintf("batch size %d, want >= 1", opts.BatchSize)}
	}
	if opts.NumRelations < 1 {
		return nil, &BatchConstructionError{Example: -1, Reason: fmt.Sprintf("num relations %d, want >= 1", opts.NumRelations)}
	}
	if opts.WordDropout < 0 || opts.WordDropout > 1 {
		return nil, &BatchConstructionError{Example: -1, Reason: fmt.Sprintf("word dropout %v outside [0, 1]", opts.WordDropout)}
	}
	if len(examples) == 0 {
		return nil, &BatchConstructionError{Example: -1, Reason: "no examples"}
	}
	if rng == nil && !opts.Eval {
		return nil, &BatchConstructionError{Example: -1, Reason: "training batcher needs a random source"}
	}

	fields := examples[0].fields()
	for i, e := range examples {
		if err := validate(e, fields, opts); err != nil {
			err.Example = i
			return nil, err
		}
	}

	b := &Batcher{
		opts:     opts,
		rng:      rng,
		examples: append([]Example(nil), examples...),
		fields:   fields,
	}

	if !opts.Eval {
		b.shuffle()
	}
	b.regroup()

	return b, nil
}

func validate(e Example, fields []string, opts Options) *BatchConstructionError {
	n := len(e.Tokens)
	if n == 0 {
		return &BatchConstructionError{Reason: "empty token sequence"}
	}

	seqs := []struct {
		name string
		seq  []int
	}{
		{"pos", e.Pos},
		{"ner", e.Ner},
		{"deprel", e.Deprel},
		{"subj_positions", e.SubjPositions},
		{"obj_positions", e.ObjPositions},
	}
	for _, s := range seqs {
		if len(s.seq) != n {
			return &BatchConstructionError{Reason: fmt.Sprintf("%s has length %d, tokens %d", s.name, len(s.seq), n)}
		}
	}

	if !equalStrings(e.fields(), fields) {
		return &BatchConstructionError{Reason: fmt.Sprintf("supplemental fields %v, want %v", e.fields(), fields)}
	}

	for _, r := range e.Activated {
		if r < 0 || r >= opts.NumRelations {
			return &BatchConstructionError{Reason: fmt.Sprintf("activated relation %d out of range", r)}
		}
	}
	for _, r := range e.KnownRelations {
		if r < 0 || r >= opts.NumRelations {
			return &BatchConstructionError{Reason: fmt.Sprintf("known relation %d out of range", r)}
		}
	}
	if e.HasBinaryLabel {
		if opts.NumRelations < 2 {
			return &BatchConstructionError{Reason: "binary labels need at least one relation besides no_relation"}
		}
		if e.BinaryLabel < 0 || e.BinaryLabel >= opts.NumRelations {
			return &BatchConstructionError{Reason: fmt.Sprintf("binary label %d out of range", e.BinaryLabel)}
		}
	}

	return nil
}

func (b *Batcher) shuffle() {
	b.dropoutSeed = b.rng.Uint64()
	b.rng.Shuffle(len(b.examples), func(i, j int) {
		b.examples[i], b.examples[j] = b.examples[j], b.examples[i]
	})
}

func (b *Batcher) regroup() {
	b.groups = b.groups[:0]
	for start := 0; start < len(b.examples); start += b.opts.BatchSize {
		end := min(start+b.opts.BatchSize, len(b.examples))
		b.groups = append(b.groups, newGroup(b.examples[start:end], b.fields))
	}
}

// Shuffle reorders the examples of a training batcher for a new epoch and
// regroups them. It does nothing on an eval batcher.
func (b *Batcher) Shuffle() {
	if b.opts.Eval {
		return
	}
	b.shuffle()
	b.regroup()
}

// Len is the number of batches.
func (b *Batcher) Len() int {
	return len(b.groups)
}

// NumExamples is the number of examples over all batches.
func (b *Batcher) NumExamples() int {
	return len(b.examples)
}

// Fields returns the supplemental field names present in every batch.
func (b *Batcher) Fields() []string {
	return append([]string(nil), b.fields...)
}

// Gold returns the gold curriculum labels in the current example order, the
// order in which batches yield examples once restored with OrigIdx.
func (b *Batcher) Gold() []string {
	labels := make([]string, len(b.examples))
	for i, e := range b.examples {
		labels[i] = e.Label
	}
	return labels
}

// Batch materializes batch i.
func (b *Batcher) Batch(i int) (*Batch, error) {
	if i < 0 || i >= len(b.groups) {
		return nil, fmt.Errorf("batch index %d out of range [0, %d)", i, len(b.groups))
	}

	bt, err := b.materialize(i, b.groups[i])
	if err != nil {
		return nil, fmt.Errorf("batch %d: %w", i, err)
	}
	return bt, nil
}

// Each materializes the batches in order and calls fn for each of them. It
// stops at the first error.
func (b *Batcher) Each(fn func(i int, bt *Batch) error) error {
	for i := range b.groups {
		bt, err := b.Batch(i)
		if err != nil {
			return err
		}
		if err := fn(i, bt); err != nil {
			return err
		}
	}
	return nil
}

// Batch is a materialized, length sorted batch. Row k of every tensor is the
// example at position OrigIdx[k] of the batch before sorting.
type Batch struct {
	Words         *LongTensor
	Masks         *BoolTensor
	Pos           *LongTensor
	Ner           *LongTensor
	Deprel        *LongTensor
	SubjPositions *LongTensor
	ObjPositions  *LongTensor

	// Activated is a size × num_relations multi-hot tensor.
	Activated *mat.Dense

	OrigIdx []int

	// SentenceLengths are the token counts of the rows, in sorted order.
	SentenceLengths []int

	Supplemental map[string]Tensor
}

// Size is the number of examples in the batch.
func (bt *Batch) Size() int {
	return len(bt.OrigIdx)
}

func (b *Batcher) materialize(idx int, g group) (*Batch, error) {
	n := g.size()
	if n == 0 {
		return nil, &BatchConstructionError{Example: -1, Reason: "empty batch"}
	}
	for f := range g.base {
		if len(g.base[f]) != n {
			return nil, &BatchConstructionError{Example: -1, Reason: fmt.Sprintf("base field %d has %d entries, want %d", f, len(g.base[f]), n)}
		}
	}
	if err := checkSupplemental(g, b.fields, n); err != nil {
		return nil, err
	}

	lens := make([]int, n)
	for i, t := range g.base[fieldTokens] {
		lens[i] = len(t)
	}
	origIdx := sortByLength(lens)

	var sorted [numBaseFields][][]int
	for f := range g.base {
		sorted[f] = permute(g.base[f], origIdx)
	}

	words := sorted[fieldTokens]
	if !b.opts.Eval {
		rng := rand.New(rand.NewPCG(b.dropoutSeed, uint64(idx)))
		words = make([][]int, n)
		for i, s := range sorted[fieldTokens] {
			words[i] = WordDropout(s, b.opts.WordDropout, rng)
		}
	}

	bt := &Batch{
		Words:           padded(words, vocab.PadId),
		Pos:             padded(sorted[fieldPos], vocab.PadId),
		Ner:             padded(sorted[fieldNer], vocab.PadId),
		Deprel:          padded(sorted[fieldDeprel], vocab.PadId),
		SubjPositions:   padded(sorted[fieldSubjPositions], vocab.PadId),
		ObjPositions:    padded(sorted[fieldObjPositions], vocab.PadId),
		Activated:       multiHot(sorted[fieldActivated], b.opts.NumRelations),
		OrigIdx:         origIdx,
		SentenceLengths: permute(lens, origIdx),
		Supplemental:    map[string]Tensor{},
	}
	bt.Masks = equalMask(bt.Words, vocab.PadId)

	for _, f := range b.fields {
		switch f {
		case FieldTriple:
			bt.Supplemental[f] = tripleTensor(permute(g.triples, origIdx))
		case FieldRelationMasking:
			bt.Supplemental[f] = multiHot(permute(g.known, origIdx), b.opts.NumRelations)
		case FieldBinaryLabels:
			bt.Supplemental[f] = binaryLabels(permute(g.binary, origIdx), b.opts.NumRelations)
		}
	}

	return bt, nil
}

func checkSupplemental(g group, fields []string, n int) error {
	for _, f := range fields {
		var got int
		switch f {
		case FieldTriple:
			got = len(g.triples)
		case FieldRelationMasking:
			got = len(g.known)
		case FieldBinaryLabels:
			got = len(g.binary)
		}
		if got != n {
			return &BatchConstructionError{Example: -1, Reason: fmt.Sprintf("supplemental field %s has %d entries, want %d", f, got, n)}
		}
	}
	return nil
}

// sortByLength returns the permutation that orders lens descending, ties kept
// in original position order. Entry k is the original position of the k-th
// sorted element.
func sortByLength(lens []int) []int {
	idx := make([]int, len(lens))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return lens[idx[a]] > lens[idx[b]]
	})
	return idx
}

func permute[T any](s []T, idx []int) []T {
	out := make([]T, len(idx))
	for k, i := range idx {
		out[k] = s[i]
	}
	return out
}

// Restore puts the rows of a sorted batch back in their pre-sort order using
// the batch OrigIdx.
func Restore[T any](sorted []T, origIdx []int) ([]T, error) {
	if len(sorted) != len(origIdx) {
		return nil, fmt.Errorf("restore: %d values for %d indices", len(sorted), len(origIdx))
	}

	out := make([]T, len(sorted))
	seen := make([]bool, len(sorted))
	for k, i := range origIdx {
		if i < 0 || i >= len(out) || seen[i] {
			return nil, fmt.Errorf("restore: invalid permutation index %d", i)
		}
		seen[i] = true
		out[i] = sorted[k]
	}
	return out, nil
}

// WordDropout returns a copy of tokens where every id other than
// vocab.UnkId is replaced by vocab.UnkId with probability p.
func WordDropout(tokens []int, p float64, rng *rand.Rand) []int {
	out := make([]int, len(tokens))
	for i, t := range tokens {
		if t != vocab.UnkId && rng.Float64() < p {
			t = vocab.UnkId
		}
		out[i] = t
	}
	return out
}

func multiHot(ids [][]int, width int) *mat.Dense {
	m := mat.NewDense(len(ids), width, nil)
	for i, row := range ids {
		for _, id := range row {
			m.Set(i, id, 1)
		}
	}
	return m
}

// binaryLabels encodes one relation id per row over the width-1 positive
// relations. no_relation, the last id, leaves its row all zero.
func binaryLabels(labels []int, numRelations int) *mat.Dense {
	width := numRelations - 1
	m := mat.NewDense(len(labels), width, nil)
	for i, l := range labels {
		if l < width {
			m.Set(i, l, 1)
		}
	}
	return m
}

func tripleTensor(triples []label.Triple) *LongTensor {
	t := NewLongTensor(len(triples), 3, 0)
	for i, tr := range triples {
		t.Set(i, 0, int64(tr.Subj))
		t.Set(i, 1, int64(tr.Rel))
		t.Set(i, 2, int64(tr.Obj))
	}
	return t
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
