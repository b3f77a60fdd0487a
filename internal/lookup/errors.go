package lookup

import (
	"fmt"
	"strings"
)

// ValidationError reports an upsert attempted with required fields empty.
// Missing holds the field names, e.g. "composerView", "epoque".
type ValidationError struct {
	Role    Role
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s entry missing required fields: %s",
			strings.ToLower(string(e.Role)), strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid %s entry: %s", strings.ToLower(string(e.Role)), e.Reason)
}

// PersistenceError wraps a failure of the backing Persister.
// Op is "load" or "save".
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("lookup %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
