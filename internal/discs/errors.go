package discs

import (
	"errors"
	"fmt"
)

// ErrEmptyGroup is returned when Combine is given no records.
var ErrEmptyGroup = errors.New("empty group")

// GroupMismatchError reports two records of a group that do not share the
// same base album or album artist set.
type GroupMismatchError struct {
	First  string
	Second string
	Reason string
}

func (e *GroupMismatchError) Error() string {
	return fmt.Sprintf("records %s and %s differ: %s", e.First, e.Second, e.Reason)
}
