package fixes

import (
	"errors"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

// ErrGroupIncomplete marks the records of a group that was not combined
// because another record of it could not be loaded.
var ErrGroupIncomplete = errors.New("group incomplete")

// Result is the outcome of an operation for one record.
type Result struct {
	ID      string
	Record  record.Record
	Changed bool
	Err     error
}

// Results holds one Result per record, in request order.
type Results []Result

// Failed returns the results that carry an error.
func (rs Results) Failed() Results {
	var out Results
	for _, r := range rs {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Changed returns the number of records that were changed.
func (rs Results) Changed() int {
	n := 0
	for _, r := range rs {
		if r.Err == nil && r.Changed {
			n++
		}
	}
	return n
}

// Err joins the errors of all failed results.
func (rs Results) Err() error {
	var errs []error
	for _, r := range rs.Failed() {
		errs = append(errs, r.Err)
	}
	return errors.Join(errs...)
}
