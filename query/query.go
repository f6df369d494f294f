package query

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/relbatch/label"
	"github.com/revelaction/relbatch/render"
)

const quit = "quit"

// Answer is the label of a relation at one curriculum stage, with the
// relations sharing that label.
type Answer struct {
	Stage    label.Stage
	Label    string
	Siblings []string
}

type Handler struct {
	Hierarchy *label.Hierarchy
	Out       io.Writer
	HasColor  bool

	curricula []label.Curriculum
}

func NewHandler(h *label.Hierarchy, out io.Writer) (*Handler, error) {
	hd := &Handler{Hierarchy: h, Out: out}
	for _, stage := range label.Stages() {
		c, err := h.Curriculum(stage)
		if err != nil {
			return nil, err
		}
		hd.curricula = append(hd.curricula, c)
	}
	return hd, nil
}

func (h *Handler) Run() error {

	fmt.Fprintln(h.Out, "🔑 relation name, optionally prefixed by a stage, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {
		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("relbatch query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
		)

		in = strings.TrimSpace(in)
		if in == quit {
			return nil
		}
		if in == "" {
			continue
		}

		history = append(history, in)

		answers, err := h.Lookup(in)
		if err != nil {
			fmt.Fprintf(h.Out, "✍  %s\n", err)
			continue
		}

		h.print(answers)
	}
}

func (h *Handler) print(answers []Answer) {
	for _, a := range answers {
		stage := a.Stage.String()
		lbl := a.Label
		if h.HasColor {
			stage = render.Yellow256 + stage + render.Off
			lbl = render.Green256 + lbl + render.Off
		}
		fmt.Fprintf(h.Out, "%-14s %s  %s\n", stage, lbl, strings.Join(a.Siblings, " "))
	}
}

// Lookup parses "[stage] relation" and returns the labels of the relation,
// at the given stage or at every stage.
func (h *Handler) Lookup(in string) ([]Answer, error) {
	stages, rel, err := h.parse(in)
	if err != nil {
		return nil, err
	}

	id, ok := h.Hierarchy.RelationId(rel)
	if !ok {
		return nil, fmt.Errorf("unknown relation: %s", rel)
	}

	var answers []Answer
	for _, c := range h.curricula {
		if !containsStage(stages, c.Stage) {
			continue
		}

		a := Answer{Stage: c.Stage}
		if c.Stage == label.SubjObjType {
			// a relation can hold between several type pairs
			a.Label, a.Siblings = h.subjObjLabels(c, id)
		} else {
			lbl, err := c.Label(label.Triple{Rel: id})
			if err != nil {
				return nil, err
			}
			a.Label = lbl
			a.Siblings = h.names(c.Members(lbl))
		}
		answers = append(answers, a)
	}

	return answers, nil
}

// subjObjLabels returns the type pair labels whose group holds the relation.
func (h *Handler) subjObjLabels(c label.Curriculum, id int) (string, []string) {
	var labels []string
	for _, lbl := range c.Labels() {
		for _, m := range c.Members(lbl) {
			if m == id {
				labels = append(labels, lbl)
				break
			}
		}
	}
	return strings.Join(labels, ","), nil
}

func (h *Handler) names(ids []int) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = h.Hierarchy.RelationName(id)
	}
	return names
}

func (h *Handler) parse(in string) ([]label.Stage, string, error) {
	tokens := strings.Fields(in)

	switch len(tokens) {
	case 0:
		return nil, "", errors.New("no relation given")
	case 1:
		return label.Stages(), tokens[0], nil
	case 2:
		stage, err := label.ParseStage(tokens[0])
		if err != nil {
			return nil, "", err
		}
		return []label.Stage{stage}, tokens[1], nil
	}

	return nil, "", fmt.Errorf("expected [stage] relation, got %d words", len(tokens))
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	return h.suggest(in.TextBeforeCursor())
}

func (h *Handler) suggest(befCursor string) []prompt.Suggest {
	s := []prompt.Suggest{}

	// Only one character in line
	if befCursor == "" {
		return s
	}

	tokens := strings.Split(befCursor, " ")
	last := tokens[len(tokens)-1]

	if len(tokens) == 1 {
		for _, stage := range label.Stages() {
			if strings.HasPrefix(stage.String(), last) {
				s = append(s, prompt.Suggest{Text: stage.String(), Description: "stage"})
			}
		}
	}

	if len(tokens) <= 2 {
		for id, name := range h.Hierarchy.Relations() {
			if strings.HasPrefix(name, last) {
				s = append(s, prompt.Suggest{Text: name, Description: fmt.Sprintf("🔖 %d", id)})
			}
		}
	}

	return s
}

func containsStage(stages []label.Stage, s label.Stage) bool {
	for _, st := range stages {
		if st == s {
			return true
		}
	}
	return false
}
