// Package processor loads the partitions of a corpus, builds the label
// hierarchy from them and creates batch iterators per partition and
// curriculum stage.
package processor

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"

	"github.com/revelaction/relbatch/batch"
	"github.com/revelaction/relbatch/config"
	"github.com/revelaction/relbatch/label"
	"github.com/revelaction/relbatch/sample"
	"github.com/revelaction/relbatch/storage"
	"github.com/revelaction/relbatch/stratify"
)

// Processor holds the parsed partitions and the label hierarchy. Both are
// read only after New returns.
type Processor struct {
	cfg config.DataConfig

	hierarchy  *label.Hierarchy
	partitions map[string][]sample.Sample

	// number of iterators created, seeds the next one
	iterators atomic.Uint64

	logger *slog.Logger

	progress func(partition string, done, total int)
}

type Option func(*Processor)

func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = l
	}
}

// WithProgress registers a callback called after every parsed record.
func WithProgress(fn func(partition string, done, total int)) Option {
	return func(p *Processor) {
		p.progress = fn
	}
}

// New reads and parses every configured partition, then builds the label
// hierarchy over all of them. Only the first (training) partition feeds the
// relation masking graph.
func New(cfg config.DataConfig, v sample.Vocabulary, repo storage.PartitionReader, opts ...Option) (*Processor, error) {
	if len(cfg.Partitions) == 0 {
		return nil, fmt.Errorf("no partitions configured")
	}

	p := &Processor{
		cfg:        cfg,
		partitions: map[string][]sample.Sample{},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}

	parser := sample.NewParser(v, sample.Options{Lower: cfg.Lower, TypedRelations: cfg.TypedRelations})
	builder := label.NewBuilder(cfg.RelationMasking)

	for i, name := range cfg.Partitions {
		records, err := repo.Read(name)
		if err != nil {
			return nil, err
		}

		total := len(records)
		samples, err := parser.ParsePartition(records, func(j int) {
			if p.progress != nil {
				p.progress(name, j+1, total)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("partition %s: %w", name, err)
		}

		builder.Add(samples, i == 0)
		p.partitions[name] = samples
		p.logger.Info("parsed partition", "partition", name, "records", total)
	}

	h, err := builder.Build()
	if err != nil {
		return nil, err
	}
	p.hierarchy = h

	for name, samples := range p.partitions {
		bound, err := h.BindAll(samples)
		if err != nil {
			return nil, fmt.Errorf("partition %s: %w", name, err)
		}
		p.partitions[name] = bound
	}

	p.logger.Info("built label hierarchy",
		"relations", h.NumRelations(),
		"no_relation_id", h.NoRelationId(),
		"subjects", len(h.Subjects()),
		"objects", len(h.Objects()),
		"relation_masking", h.HasGraph())

	return p, nil
}

func (p *Processor) Hierarchy() *label.Hierarchy {
	return p.hierarchy
}

// Partition returns the bound samples of a partition.
func (p *Processor) Partition(name string) ([]sample.Sample, bool) {
	s, ok := p.partitions[name]
	return s, ok
}

// IteratorFor is Iterator with the stage given by name. An unknown stage
// fails with *label.UnknownLabelError before any batching.
func (p *Processor) IteratorFor(partition, stageName string) (*batch.Batcher, error) {
	stage, err := label.ParseStage(stageName)
	if err != nil {
		return nil, err
	}
	return p.Iterator(partition, stage)
}

// Iterator creates a batcher over a partition at a curriculum stage. The
// training partition is shuffled and uses word dropout; any other partition
// is evaluated in order. With a configured sample size the partition is
// stratified first.
//
// Every iterator owns its random source, seeded by the configured seed and
// the iterator's creation order, so shuffling one never moves another.
func (p *Processor) Iterator(partition string, stage label.Stage) (*batch.Batcher, error) {
	samples, ok := p.partitions[partition]
	if !ok {
		return nil, fmt.Errorf("unknown partition: %s", partition)
	}

	c, err := p.hierarchy.Curriculum(stage)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(p.cfg.Seed, p.iterators.Add(1)-1))

	if p.cfg.SampleSize != nil {
		classes := make([]int, p.hierarchy.NumRelations())
		for i := range classes {
			classes[i] = i
		}
		samples = stratify.Stratified(samples, *p.cfg.SampleSize, classes, func(s sample.Sample) int {
			return s.RelationId
		}, rng)
		p.logger.Debug("stratified partition", "partition", partition, "sample_size", *p.cfg.SampleSize, "drawn", len(samples))
	}

	examples := make([]batch.Example, 0, len(samples))
	for i, s := range samples {
		e, err := p.example(s, c)
		if err != nil {
			return nil, fmt.Errorf("partition %s: sample %d: %w", partition, i, err)
		}
		examples = append(examples, e)
	}

	opts := batch.Options{
		BatchSize:    p.cfg.BatchSize,
		Eval:         partition != p.cfg.TrainPartition(),
		WordDropout:  p.cfg.WordDropout,
		NumRelations: p.hierarchy.NumRelations(),
	}

	b, err := batch.New(examples, opts, rng)
	if err != nil {
		return nil, fmt.Errorf("partition %s: %w", partition, err)
	}

	p.logger.Debug("created iterator", "partition", partition, "stage", stage.String(), "batches", b.Len(), "eval", opts.Eval)
	return b, nil
}

// example enriches a bound sample for one curriculum. The sample slices are
// shared, never written.
func (p *Processor) example(s sample.Sample, c label.Curriculum) (batch.Example, error) {
	t := label.TripleOf(s)

	lbl, err := c.Label(t)
	if err != nil {
		return batch.Example{}, err
	}

	e := batch.Example{
		Tokens:        s.Tokens,
		Pos:           s.Pos,
		Ner:           s.Ner,
		Deprel:        s.Deprel,
		SubjPositions: s.SubjPositions,
		ObjPositions:  s.ObjPositions,
		Activated:     c.Members(lbl),
		Label:         lbl,
		Triple:        t,
	}

	if p.hierarchy.HasGraph() {
		e.KnownRelations = p.hierarchy.KnownRelations(label.Pair{Subj: t.Subj, Obj: t.Obj})
	}

	if p.cfg.BinaryLabels {
		e.HasBinaryLabel = true
		e.BinaryLabel = s.RelationId
	}

	return e, nil
}
