package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dpetit12345/classical-fixes/internal/errmsg"
	"github.com/dpetit12345/classical-fixes/internal/fixes"
)

const (
	statusChanged     = "changed"
	statusWouldChange = "would change"
	statusUnchanged   = "unchanged"
	statusFailed      = "failed"
)

// report collects the results of one command run.
type report struct {
	op      errmsg.Op
	dryRun  bool
	results fixes.Results
}

func (r *report) add(results fixes.Results) {
	r.results = append(r.results, results...)
}

// addFailure records a file that never reached the runner.
func (r *report) addFailure(id string, op errmsg.Op, err error) {
	r.results = append(r.results, fixes.Result{ID: id, Err: errors.New(errmsg.Format(op, err))})
}

func (r *report) status(res fixes.Result) string {
	switch {
	case res.Err != nil:
		return statusFailed
	case res.Changed && r.dryRun:
		return statusWouldChange
	case res.Changed:
		return statusChanged
	default:
		return statusUnchanged
	}
}

// write prints the result table and a summary line. It returns an error
// when any record failed.
func (r *report) write(w io.Writer) error {
	if len(r.results) == 0 {
		fmt.Fprintln(w, "No music files found.")
		return nil
	}

	rows := make([][]string, 0, len(r.results))
	for _, res := range r.results {
		detail := ""
		if res.Err != nil {
			detail = res.Err.Error()
		}
		rows = append(rows, []string{filepath.Base(res.ID), r.status(res), detail})
	}
	fmt.Fprintln(w, renderTable([]string{"File", "Status", "Detail"}, rows, nil))

	failed := len(r.results.Failed())
	fmt.Fprintf(w, "%d files, %d changed, %d failed\n", len(r.results), r.results.Changed(), failed)
	if failed > 0 {
		return errors.New(errmsg.Format(r.op, fmt.Errorf("%d of %d files failed", failed, len(r.results))))
	}
	return nil
}
