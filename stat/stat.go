package stat

import (
	sent "github.com/revelaction/relbatch/sentence"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumRecords          int
	NumTokens           int
	TokensPerRecordMean int
	TokensPerRecordDis  map[int]int
	RelationDis         map[string]int
	NumNoRelation       int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{TokensPerRecordDis: map[int]int{}, RelationDis: map[string]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the records of a partition. It can be called once per
// partition to get corpus wide numbers.
func (h *Handler) Aggregate(p sent.Partition) {
	h.stats.NumRecords += len(p)

	for _, r := range p {
		h.stats.NumTokens += len(r.Tokens)
		h.stats.TokensPerRecordDis[len(r.Tokens)]++
		h.stats.RelationDis[r.Relation]++
		if r.Relation == sent.NoRelation {
			h.stats.NumNoRelation++
		}
	}

	if h.stats.NumRecords > 0 {
		h.stats.TokensPerRecordMean = h.stats.NumTokens / h.stats.NumRecords
	}
}
