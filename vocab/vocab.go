package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Vocab maps words to ids. Ids 0 and 1 are always PadToken and UnkToken, and
// the entity tokens SUBJ-<type> and OBJ-<type> of the schema are always
// present.
type Vocab struct {
	words []string
	ids   map[string]int
}

// New builds a vocabulary from a word list. The reserved tokens are moved to
// the front, duplicates are dropped and missing entity tokens are appended.
func New(words []string) *Vocab {
	v := &Vocab{ids: map[string]int{}}
	v.add(PadToken)
	v.add(UnkToken)

	for _, w := range words {
		v.add(w)
	}

	for _, t := range SubjNerTypes {
		v.add(SubjPrefix + t)
	}
	for _, t := range ObjNerTypes {
		v.add(ObjPrefix + t)
	}

	return v
}

func (v *Vocab) add(w string) {
	if _, ok := v.ids[w]; ok {
		return
	}
	v.ids[w] = len(v.words)
	v.words = append(v.words, w)
}

// Load reads a vocabulary file with one token per line. Blank lines are
// skipped.
func Load(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimRight(scanner.Text(), "\r")
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vocab %s: %w", path, err)
	}

	return New(words), nil
}

// Size is the number of words, reserved tokens included.
func (v *Vocab) Size() int {
	return len(v.words)
}

// Word returns the word of an id, UnkToken for ids out of range.
func (v *Vocab) Word(id int) string {
	if id < 0 || id >= len(v.words) {
		return UnkToken
	}
	return v.words[id]
}

func (v *Vocab) WordId(w string) (int, bool) {
	id, ok := v.ids[w]
	return id, ok
}

func (v *Vocab) PosId(tag string) (int, bool) {
	id, ok := PosToId[tag]
	return id, ok
}

func (v *Vocab) NerId(tag string) (int, bool) {
	id, ok := NerToId[tag]
	return id, ok
}

func (v *Vocab) DeprelId(tag string) (int, bool) {
	id, ok := DeprelToId[tag]
	return id, ok
}
