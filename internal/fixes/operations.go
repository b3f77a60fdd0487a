package fixes

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dpetit12345/classical-fixes/internal/discs"
	"github.com/dpetit12345/classical-fixes/internal/lookup"
	"github.com/dpetit12345/classical-fixes/internal/record"
)

// CombineDiscs merges the discs of group into one album. It fails with
// *discs.GroupMismatchError, leaving group untouched, when the records do
// not share a base album and album artist set.
func (s *Service) CombineDiscs(group []record.Record) ([]record.Record, error) {
	return discs.Combine(group)
}

// RenumberSequential numbers the tracks of records from 1 on a single disc,
// keeping the previous numbers in the original fields.
func (s *Service) RenumberSequential(records []record.Record) []record.Record {
	return discs.RenumberSequential(records)
}

// AddComposerToLookup stores the composer of r with its sort name, view and
// epoque. All four must be set.
func (s *Service) AddComposerToLookup(r record.Record) error {
	err := s.store.UpsertComposer(lookup.Composer{
		Name:     r.Composer,
		SortName: r.ComposerSort,
		View:     r.ComposerView,
		Epoque:   r.Epoque,
	})
	return s.logLookupError(err, lookup.RoleComposer, r)
}

// AddConductorToLookup stores the conductor of r.
func (s *Service) AddConductorToLookup(r record.Record) error {
	err := s.store.UpsertConductor(lookup.Conductor{Name: r.Conductor})
	return s.logLookupError(err, lookup.RoleConductor, r)
}

// AddOrchestraToLookup stores the orchestra of r.
func (s *Service) AddOrchestraToLookup(r record.Record) error {
	err := s.store.UpsertOrchestra(lookup.Orchestra{Name: r.Orchestra})
	return s.logLookupError(err, lookup.RoleOrchestra, r)
}

func (s *Service) logLookupError(err error, role lookup.Role, r record.Record) error {
	if err == nil {
		return nil
	}
	var perr *lookup.PersistenceError
	if errors.As(err, &perr) {
		log.Error().Err(err).Str("role", string(role)).Str("id", r.ID).Msg("lookup table not saved")
	}
	return err
}
