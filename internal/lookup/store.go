package lookup

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dpetit12345/classical-fixes/internal/names"
)

// Persister loads and saves the whole lookup table.
type Persister interface {
	LoadAll() (Table, error)
	SaveAll(t Table) error
}

// Option configures a Store.
type Option func(*Store)

// WithSimilarityThreshold sets the score above which two person names
// sharing an alias key are treated as the same person.
func WithSimilarityThreshold(threshold float64) Option {
	return func(s *Store) {
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

// Store is the in-memory lookup table. It is loaded once from its Persister
// and written back in full on every upsert. Reads are safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	persister Persister
	threshold float64
	table     Table
	idx       index
}

// Open loads the table from p.
func Open(p Persister, opts ...Option) (*Store, error) {
	s := &Store{persister: p, threshold: names.DefaultSimilarityThreshold}
	for _, opt := range opts {
		opt(s)
	}
	t, err := p.LoadAll()
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	s.table = t
	s.idx = buildIndex(t, s.threshold)
	log.Debug().
		Int("composers", len(t.Composers)).
		Int("conductors", len(t.Conductors)).
		Int("orchestras", len(t.Orchestras)).
		Int("misspellings", len(t.Misspellings)).
		Msg("lookup loaded")
	return s, nil
}

// Table returns a copy of the current table.
func (s *Store) Table() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// FindComposer returns the composer named by fragment. Exact and alias
// keys are tried first (after misspelling correction), then whole-word
// containment in either direction. Table order breaks ties.
func (s *Store) FindComposer(fragment string) (Composer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s, s.table.Composers, s.idx.composers, fragment, func(c Composer) string { return c.Name })
}

// FindConductor is FindComposer for conductors.
func (s *Store) FindConductor(fragment string) (Conductor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s, s.table.Conductors, s.idx.conductors, fragment, func(c Conductor) string { return c.Name })
}

// FindOrchestra is FindComposer for orchestras.
func (s *Store) FindOrchestra(fragment string) (Orchestra, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return find(s, s.table.Orchestras, s.idx.orchestras, fragment, func(o Orchestra) string { return o.Name })
}

// ResolveMisspelling returns the canonical spelling of name: an explicit
// misspelling alias wins, then a name whose key equals a known entity's
// full key. Unknown names are returned trimmed.
func (s *Store) ResolveMisspelling(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveLocked(name)
}

func (s *Store) resolveLocked(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	key := names.MakeKey(name)
	if key == "" {
		return name
	}
	if canonical, ok := s.idx.aliases[key]; ok {
		return canonical
	}
	if i, ok := s.idx.composers.full[key]; ok {
		return s.table.Composers[i].Name
	}
	if i, ok := s.idx.conductors.full[key]; ok {
		return s.table.Conductors[i].Name
	}
	if i, ok := s.idx.orchestras.full[key]; ok {
		return s.table.Orchestras[i].Name
	}
	return name
}

func find[T any](s *Store, entries []T, idx roleIndex, fragment string, name func(T) string) (T, bool) {
	var zero T
	key := names.MakeKey(fragment)
	if key == "" {
		return zero, false
	}
	if i, ok := idx.get(key); ok {
		return entries[i], true
	}
	if rk := names.MakeKey(s.resolveLocked(fragment)); rk != key {
		if i, ok := idx.get(rk); ok {
			return entries[i], true
		}
	}
	for _, e := range entries {
		if names.ContainsName(fragment, name(e)) {
			return e, true
		}
	}
	return zero, false
}

// UpsertComposer inserts c or replaces the composer with the same key, then
// persists the table. Name, sort name, view and epoque are all required.
func (s *Store) UpsertComposer(c Composer) error {
	c = trimComposer(c)
	if err := validateEntry(RoleComposer, c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.table.Clone()
	next.Composers = upsert(next.Composers, c, func(x Composer) string { return x.Name })
	return s.commitLocked(next, RoleComposer, c.Name)
}

// UpsertConductor inserts or replaces a conductor. An empty sort name is
// derived from the name.
func (s *Store) UpsertConductor(c Conductor) error {
	c = trimConductor(c)
	if err := validateEntry(RoleConductor, c); err != nil {
		return err
	}
	if c.SortName == "" {
		c.SortName = names.ReverseName(c.Name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.table.Clone()
	next.Conductors = upsert(next.Conductors, c, func(x Conductor) string { return x.Name })
	return s.commitLocked(next, RoleConductor, c.Name)
}

// UpsertOrchestra inserts or replaces an orchestra.
func (s *Store) UpsertOrchestra(o Orchestra) error {
	o = trimOrchestra(o)
	if err := validateEntry(RoleOrchestra, o); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.table.Clone()
	next.Orchestras = upsert(next.Orchestras, o, func(x Orchestra) string { return x.Name })
	return s.commitLocked(next, RoleOrchestra, o.Name)
}

// UpsertMisspelling adds aliases for a canonical name, merging with any
// existing entry for it. An alias already mapped to another canonical name
// is rejected, keeping alias sets disjoint.
func (s *Store) UpsertMisspelling(m Misspelling) error {
	m = trimMisspelling(m)
	if err := validateEntry(RoleMisspelling, m); err != nil {
		return err
	}
	canonicalKey := names.MakeKey(m.Canonical)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range m.Aliases {
		if owner, ok := s.idx.aliases[names.MakeKey(a)]; ok && names.MakeKey(owner) != canonicalKey {
			return &ValidationError{
				Role:   RoleMisspelling,
				Reason: fmt.Sprintf("alias %q already maps to %q", a, owner),
			}
		}
	}

	next := s.table.Clone()
	pos := -1
	for i, e := range next.Misspellings {
		if names.MakeKey(e.Canonical) == canonicalKey {
			pos = i
			break
		}
	}
	if pos < 0 {
		next.Misspellings = append(next.Misspellings, Misspelling{Canonical: m.Canonical})
		pos = len(next.Misspellings) - 1
	}
	entry := &next.Misspellings[pos]
	entry.Canonical = m.Canonical
	for _, a := range m.Aliases {
		ak := names.MakeKey(a)
		if ak == canonicalKey || names.ContainsKey(entry.Aliases, ak) {
			continue
		}
		entry.Aliases = append(entry.Aliases, a)
	}
	return s.commitLocked(next, RoleMisspelling, m.Canonical)
}

func upsert[T any](entries []T, e T, name func(T) string) []T {
	key := names.MakeKey(name(e))
	for i, x := range entries {
		if names.MakeKey(name(x)) == key {
			entries[i] = e
			return entries
		}
	}
	return append(entries, e)
}

// commitLocked persists next and only then makes it visible.
func (s *Store) commitLocked(next Table, role Role, name string) error {
	if err := s.persister.SaveAll(next); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	s.table = next
	s.idx = buildIndex(next, s.threshold)
	log.Info().Str("role", string(role)).Str("name", name).Msg("lookup entry saved")
	return nil
}
