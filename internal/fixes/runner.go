package fixes

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

// Runner loads records through a host accessor, runs a Service operation on
// them and saves the changed copies back. A failure on one record is
// reported in its Result and does not undo the others.
type Runner struct {
	svc    *Service
	access record.Accessor

	// DryRun computes results without saving records. Lookup additions
	// are still stored.
	DryRun bool
}

// NewRunner returns a Runner over access.
func NewRunner(svc *Service, access record.Accessor) *Runner {
	return &Runner{svc: svc, access: access}
}

// load returns the records that loaded, the index of each in ids, and a
// Results slice with load failures filled in.
func (r *Runner) load(ids []string) ([]record.Record, []int, Results) {
	results := make(Results, len(ids))
	var recs []record.Record
	var pos []int
	for i, id := range ids {
		results[i].ID = id
		rec, err := r.access.Load(id)
		if err != nil {
			results[i].Err = fmt.Errorf("load: %w", err)
			continue
		}
		results[i].Record = rec
		recs = append(recs, rec)
		pos = append(pos, i)
	}
	return recs, pos, results
}

// store writes updated back for each loaded record, marking changes.
func (r *Runner) store(results Results, before, updated []record.Record, pos []int) {
	for j, rec := range updated {
		res := &results[pos[j]]
		res.Record = rec
		res.Changed = !rec.Equal(before[j])
		if !res.Changed || r.DryRun {
			continue
		}
		if err := r.access.Save(rec); err != nil {
			res.Err = fmt.Errorf("save: %w", err)
			log.Error().Err(err).Str("id", rec.ID).Msg("record not saved")
		}
	}
}

// CombineDiscs combines the records of ids as one group. Nothing is saved
// unless every record loads and the group validates.
func (r *Runner) CombineDiscs(ids []string) Results {
	recs, pos, results := r.load(ids)
	if len(recs) != len(ids) {
		for _, i := range pos {
			results[i].Err = ErrGroupIncomplete
		}
		return results
	}
	combined, err := r.svc.CombineDiscs(recs)
	if err != nil {
		for i := range results {
			results[i].Err = err
		}
		return results
	}
	r.store(results, recs, combined, pos)
	return results
}

// ClassicalFixes fixes the records of ids as one batch.
func (r *Runner) ClassicalFixes(ids []string) Results {
	recs, pos, results := r.load(ids)
	r.store(results, recs, r.svc.ClassicalFixes(recs), pos)
	return results
}

// ClassicalFixesLoaded fixes records already read from the accessor as one
// batch, saving the changed ones without loading them again.
func (r *Runner) ClassicalFixesLoaded(recs []record.Record) Results {
	results := make(Results, len(recs))
	pos := make([]int, len(recs))
	for i, rec := range recs {
		results[i] = Result{ID: rec.ID, Record: rec}
		pos[i] = i
	}
	r.store(results, recs, r.svc.ClassicalFixes(recs), pos)
	return results
}

// RenumberSequential renumbers the records of ids.
func (r *Runner) RenumberSequential(ids []string) Results {
	recs, pos, results := r.load(ids)
	r.store(results, recs, r.svc.RenumberSequential(recs), pos)
	return results
}

// AddComposerToLookup adds the composer of each record to the lookup table.
func (r *Runner) AddComposerToLookup(ids []string) Results {
	return r.each(ids, r.svc.AddComposerToLookup)
}

// AddConductorToLookup adds the conductor of each record to the lookup table.
func (r *Runner) AddConductorToLookup(ids []string) Results {
	return r.each(ids, r.svc.AddConductorToLookup)
}

// AddOrchestraToLookup adds the orchestra of each record to the lookup table.
func (r *Runner) AddOrchestraToLookup(ids []string) Results {
	return r.each(ids, r.svc.AddOrchestraToLookup)
}

func (r *Runner) each(ids []string, op func(record.Record) error) Results {
	recs, pos, results := r.load(ids)
	for j, rec := range recs {
		if err := op(rec); err != nil {
			results[pos[j]].Err = err
			continue
		}
		results[pos[j]].Changed = true
	}
	return results
}
