// Package roles infers composer, conductor and orchestra from the artist
// credits of a record.
package roles

import (
	"github.com/rs/zerolog/log"

	"github.com/dpetit12345/classical-fixes/internal/lookup"
	"github.com/dpetit12345/classical-fixes/internal/names"
	"github.com/dpetit12345/classical-fixes/internal/record"
)

// Lookup is the read side of the lookup store.
type Lookup interface {
	FindComposer(fragment string) (lookup.Composer, bool)
	FindConductor(fragment string) (lookup.Conductor, bool)
	FindOrchestra(fragment string) (lookup.Orchestra, bool)
}

// Inferencer fills unset roles of a record from its credits.
type Inferencer struct {
	store   Lookup
	matcher *names.Matcher
}

// New returns an Inferencer reading from store.
func New(store Lookup, matcher *names.Matcher) *Inferencer {
	return &Inferencer{store: store, matcher: matcher}
}

// source identifies the credit list a name was taken from.
type source int

const (
	fromArtist source = iota
	fromAlbumArtist
)

func (s source) String() string {
	if s == fromArtist {
		return "artist"
	}
	return "albumartist"
}

// state carries the credit lists and the keys already claimed by a role
// while one record is processed.
type state struct {
	rec     record.Record
	claimed map[string]bool
}

func (s *state) claim(name string) {
	if k := names.MakeKey(name); k != "" {
		s.claimed[k] = true
	}
}

func (s *state) isClaimed(name string) bool {
	return s.claimed[names.MakeKey(name)]
}

func (s *state) list(src source) []string {
	if src == fromArtist {
		return s.rec.Artist
	}
	return s.rec.AlbumArtist
}

func (s *state) setList(src source, v []string) {
	if src == fromArtist {
		s.rec.Artist = v
	} else {
		s.rec.AlbumArtist = v
	}
}

// Infer returns a copy of r with credit lists expanded, already-set roles
// normalized against the lookup, unset roles inferred from the artist then
// album artist credits, and remaining credits corrected for misspellings.
// A matched credit is removed from the list it came from. Composer is tried
// first, then conductor, then orchestra, and no credit or canonical name is
// assigned to more than one role.
func (in *Inferencer) Infer(r record.Record) record.Record {
	s := &state{rec: r.Clone(), claimed: make(map[string]bool)}
	s.rec.Artist = names.ExpandList(s.rec.Artist)
	s.rec.AlbumArtist = names.ExpandList(s.rec.AlbumArtist)

	in.normalizeAssigned(s)

	if s.rec.Composer == "" {
		in.inferComposer(s)
	}
	if s.rec.Conductor == "" {
		in.inferConductor(s)
	}
	if s.rec.Orchestra == "" {
		in.inferOrchestra(s)
	}

	s.rec.Artist = in.correct(s.rec.Artist)
	s.rec.AlbumArtist = in.correct(s.rec.AlbumArtist)
	return s.rec
}

// normalizeAssigned rewrites roles that are already set to their canonical
// lookup form and claims them.
func (in *Inferencer) normalizeAssigned(s *state) {
	rec := &s.rec
	if rec.Composer != "" && len(names.ExpandList([]string{rec.Composer})) == 1 {
		if c, ok := in.store.FindComposer(rec.Composer); ok {
			rec.Composer = c.Name
			rec.ComposerSort = c.SortName
			rec.ComposerView = c.View
			if c.Epoque != "" {
				rec.Epoque = c.Epoque
			}
		} else if rec.ComposerView == "" {
			rec.ComposerView = names.ReverseName(rec.Composer)
			if rec.ComposerSort == "" {
				rec.ComposerSort = rec.ComposerView
			}
		}
	}
	if rec.Conductor != "" {
		if c, ok := in.store.FindConductor(rec.Conductor); ok {
			rec.Conductor = c.Name
		}
	}
	if rec.Orchestra != "" {
		if o, ok := in.store.FindOrchestra(rec.Orchestra); ok {
			rec.Orchestra = o.Name
		}
	}
	for _, v := range []string{rec.Composer, rec.Conductor, rec.Orchestra} {
		s.claim(v)
	}
}

// scan runs find over the artist list, then the album artist list, and
// removes the first matching credit from its list.
func scan[T any](s *state, find func(string) (T, bool)) (names.Extraction[T], source, bool) {
	guarded := func(n string) (T, bool) {
		var zero T
		if s.isClaimed(n) {
			return zero, false
		}
		return find(n)
	}
	for _, src := range []source{fromArtist, fromAlbumArtist} {
		if ex, ok := names.ExtractEntity(s.list(src), guarded); ok {
			s.setList(src, ex.Rest)
			s.claim(ex.Name)
			return ex, src, true
		}
	}
	return names.Extraction[T]{Index: -1}, fromArtist, false
}

func (in *Inferencer) inferComposer(s *state) {
	ex, src, ok := scan(s, func(n string) (lookup.Composer, bool) {
		c, found := in.store.FindComposer(n)
		return c, found && !s.isClaimed(c.Name)
	})
	if !ok {
		return
	}
	c := ex.Entry
	s.rec.Composer = c.Name
	s.rec.ComposerSort = c.SortName
	s.rec.ComposerView = c.View
	s.rec.Epoque = c.Epoque
	s.claim(c.Name)
	logAssigned(s.rec.ID, "composer", c.Name, src)
}

func (in *Inferencer) inferConductor(s *state) {
	ex, src, ok := scan(s, func(n string) (lookup.Conductor, bool) {
		c, found := in.store.FindConductor(n)
		return c, found && !s.isClaimed(c.Name)
	})
	if !ok {
		return
	}
	s.rec.Conductor = ex.Entry.Name
	s.claim(ex.Entry.Name)
	logAssigned(s.rec.ID, "conductor", ex.Entry.Name, src)
}

func (in *Inferencer) inferOrchestra(s *state) {
	ex, src, ok := scan(s, func(n string) (lookup.Orchestra, bool) {
		o, found := in.store.FindOrchestra(n)
		return o, found && !s.isClaimed(o.Name)
	})
	if ok {
		s.rec.Orchestra = ex.Entry.Name
		s.claim(ex.Entry.Name)
		logAssigned(s.rec.ID, "orchestra", ex.Entry.Name, src)
		return
	}

	structural, src, ok := scan(s, func(n string) (string, bool) {
		return n, in.matcher.LooksLikeOrchestraName(n)
	})
	if !ok {
		return
	}
	s.rec.Orchestra = in.matcher.CorrectMisspelling(structural.Entry)
	s.claim(s.rec.Orchestra)
	logAssigned(s.rec.ID, "orchestra", s.rec.Orchestra, src)
}

func (in *Inferencer) correct(list []string) []string {
	if len(list) == 0 {
		return list
	}
	out := make([]string, 0, len(list))
	for _, n := range list {
		if c := in.matcher.CorrectMisspelling(n); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func logAssigned(id, role, name string, src source) {
	log.Debug().
		Str("record", id).
		Str("role", role).
		Str("name", name).
		Stringer("from", src).
		Msg("role inferred")
}
