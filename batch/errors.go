package batch

import "fmt"

// BatchConstructionError reports examples that cannot be batched: an empty
// group, misaligned fields or inconsistent supplemental data.
type BatchConstructionError struct {
	// Example is the index of the offending example, -1 if not specific
	Example int

	Reason string
}

func (e *BatchConstructionError) Error() string {
	if e.Example < 0 {
		return "batch construction: " + e.Reason
	}
	return fmt.Sprintf("batch construction: example %d: %s", e.Example, e.Reason)
}
