package label

import "strconv"

// Stage is a curriculum stage: the granularity at which relations are
// grouped into labels.
type Stage int

const (
	Full Stage = iota
	Binary
	SubjType
	SubjObjType
)

var stageNames = [...]string{
	Full:        "full",
	Binary:      "binary",
	SubjType:    "subj_type",
	SubjObjType: "subj_obj_type",
}

func (s Stage) String() string {
	if !s.valid() {
		return "Stage(" + strconv.Itoa(int(s)) + ")"
	}
	return stageNames[s]
}

func (s Stage) valid() bool {
	return s >= Full && s <= SubjObjType
}

// ParseStage returns the stage of a configuration name.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, &UnknownLabelError{Stage: name}
}

// Stages returns all stages, from coarsest to finest.
func Stages() []Stage {
	return []Stage{Binary, SubjType, SubjObjType, Full}
}
