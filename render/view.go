package render

import (
	"sort"

	"github.com/revelaction/relbatch/batch"
	"github.com/revelaction/relbatch/label"
	"github.com/revelaction/relbatch/stat"
)

// WordFunc resolves an entity type id to its token, e.g. label.Hierarchy.TypeName.
type WordFunc func(id int) string

type RelationView struct {
	Id   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

type GroupView struct {
	Label     string   `json:"label" yaml:"label"`
	Relations []string `json:"relations" yaml:"relations"`
}

type StageView struct {
	Stage  string      `json:"stage" yaml:"stage"`
	Groups []GroupView `json:"groups" yaml:"groups"`
}

type PairView struct {
	Subj      string   `json:"subj" yaml:"subj"`
	Obj       string   `json:"obj" yaml:"obj"`
	Relations []string `json:"relations" yaml:"relations"`
}

// HierarchyView is the serializable form of a label hierarchy.
type HierarchyView struct {
	NumRelations int            `json:"num_relations" yaml:"num_relations"`
	NoRelationId int            `json:"no_relation_id" yaml:"no_relation_id"`
	Relations    []RelationView `json:"relations" yaml:"relations"`
	Subjects     []string       `json:"subjects" yaml:"subjects"`
	Objects      []string       `json:"objects" yaml:"objects"`
	Stages       []StageView    `json:"stages" yaml:"stages"`
	Graph        []PairView     `json:"graph,omitempty" yaml:"graph,omitempty"`
}

func NewHierarchyView(h *label.Hierarchy, word WordFunc) (HierarchyView, error) {
	v := HierarchyView{
		NumRelations: h.NumRelations(),
		NoRelationId: h.NoRelationId(),
	}

	for id, name := range h.Relations() {
		v.Relations = append(v.Relations, RelationView{Id: id, Name: name})
	}

	for _, id := range h.Subjects() {
		v.Subjects = append(v.Subjects, word(id))
	}
	for _, id := range h.Objects() {
		v.Objects = append(v.Objects, word(id))
	}

	for _, stage := range label.Stages() {
		c, err := h.Curriculum(stage)
		if err != nil {
			return HierarchyView{}, err
		}

		sv := StageView{Stage: stage.String()}
		for _, lbl := range c.Labels() {
			sv.Groups = append(sv.Groups, GroupView{Label: lbl, Relations: relationNames(h, c.Members(lbl))})
		}
		v.Stages = append(v.Stages, sv)
	}

	for _, p := range h.Pairs() {
		v.Graph = append(v.Graph, PairView{
			Subj:      word(p.Subj),
			Obj:       word(p.Obj),
			Relations: relationNames(h, h.KnownRelations(p)),
		})
	}

	return v, nil
}

func relationNames(h *label.Hierarchy, ids []int) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = h.RelationName(id)
	}
	return names
}

// BatchView summarizes one materialized batch.
type BatchView struct {
	Index           int               `json:"index" yaml:"index"`
	Size            int               `json:"size" yaml:"size"`
	MaxLen          int               `json:"max_len" yaml:"max_len"`
	SentenceLengths []int             `json:"sentence_lengths" yaml:"sentence_lengths"`
	OrigIdx         []int             `json:"orig_idx" yaml:"orig_idx"`
	Shapes          map[string][2]int `json:"shapes" yaml:"shapes"`
}

func NewBatchView(i int, bt *batch.Batch) BatchView {
	_, maxLen := bt.Words.Dims()

	v := BatchView{
		Index:           i,
		Size:            bt.Size(),
		MaxLen:          maxLen,
		SentenceLengths: bt.SentenceLengths,
		OrigIdx:         bt.OrigIdx,
		Shapes:          map[string][2]int{},
	}

	shape := func(name string, t batch.Tensor) {
		r, c := t.Dims()
		v.Shapes[name] = [2]int{r, c}
	}
	shape("words", bt.Words)
	shape("masks", bt.Masks)
	shape("activated", bt.Activated)
	for name, t := range bt.Supplemental {
		shape(name, t)
	}

	return v
}

type CountView struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// StatsView is the serializable form of corpus statistics. Distributions
// are sorted by count, descending.
type StatsView struct {
	NumRecords          int         `json:"num_records" yaml:"num_records"`
	NumTokens           int         `json:"num_tokens" yaml:"num_tokens"`
	TokensPerRecordMean int         `json:"tokens_per_record_mean" yaml:"tokens_per_record_mean"`
	NumNoRelation       int         `json:"num_no_relation" yaml:"num_no_relation"`
	Relations           []CountView `json:"relations" yaml:"relations"`
}

func NewStatsView(s stat.Stats) StatsView {
	v := StatsView{
		NumRecords:          s.NumRecords,
		NumTokens:           s.NumTokens,
		TokensPerRecordMean: s.TokensPerRecordMean,
		NumNoRelation:       s.NumNoRelation,
	}

	for rel, n := range s.RelationDis {
		v.Relations = append(v.Relations, CountView{Key: rel, Count: n})
	}
	sort.Slice(v.Relations, func(i, j int) bool {
		if v.Relations[i].Count != v.Relations[j].Count {
			return v.Relations[i].Count > v.Relations[j].Count
		}
		return v.Relations[i].Key < v.Relations[j].Key
	})

	return v
}
