package label

import "fmt"

// UnknownLabelError reports a curriculum stage name (or value) outside the
// four supported stages.
type UnknownLabelError struct {
	Stage string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown curriculum stage %q (want one of binary, subj_type, subj_obj_type, full)", e.Stage)
}

// InvariantViolation reports a broken label hierarchy: a synthesized triple
// that collides with an observed one, or a misplaced no_relation id.
type InvariantViolation struct {
	Msg string
}

func (e *InvariantViolation) Error() string {
	return "label hierarchy invariant violated: " + e.Msg
}
