package fixes

import (
	"regexp"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/dpetit12345/classical-fixes/internal/record"
	"github.com/dpetit12345/classical-fixes/internal/titles"
)

var bracketed = regexp.MustCompile(`\[([^\[\]]+)\]`)

// ClassicalFixes returns fixed copies of records, in input order.
//
// Each record has its roles inferred, its album artist reordered, bracketed
// conductor and composer names removed from the album, title and album
// normalized, credits finished and genre fixed. When every record shared one
// album (or album artist) before and the fixes would split them, the shared
// value is restored. Changed records get a change stamp.
func (s *Service) ClassicalFixes(records []record.Record) []record.Record {
	out := make([]record.Record, len(records))
	for i, r := range records {
		out[i] = s.fixRecord(r)
	}

	keepShared(records, out,
		func(r record.Record) string { return r.Album },
		func(r *record.Record, from record.Record) { r.Album = from.Album })
	keepShared(records, out,
		func(r record.Record) string { return r.AlbumArtistDisplay() },
		func(r *record.Record, from record.Record) { r.AlbumArtist = slices.Clone(from.AlbumArtist) })

	changed := 0
	stamp := s.now().Format(StampLayout)
	for i := range out {
		if out[i].Equal(records[i]) {
			continue
		}
		changed++
		if s.stamp {
			out[i].FixedAt = stamp
		}
		log.Debug().
			Str("id", out[i].ID).
			Str("title", out[i].Title).
			Str("album", out[i].Album).
			Msg("record fixed")
	}
	log.Info().Int("records", len(out)).Int("changed", changed).Msg("classical fixes applied")
	return out
}

func (s *Service) fixRecord(r record.Record) record.Record {
	rec := s.roles.Infer(r)
	rec = s.credits.Reorder(rec)

	rec.Album = titles.StripBracketedName(rec.Album, rec.Conductor)
	rec.Album = titles.StripBracketedName(rec.Album, rec.Composer)
	rec.Album = s.stripKnownConductors(rec.Album)
	if s.stripDiscMarkers {
		rec.Album = titles.CleanAlbumTitle(rec.Album)
	}
	rec.Title = s.titles.Normalize(rec.Title)
	rec.Album = s.titles.Normalize(rec.Album)

	rec = s.credits.Finish(rec)
	s.fixGenre(&rec)
	return rec
}

// stripKnownConductors removes "[Name]" annotations naming a conductor of
// the lookup table.
func (s *Service) stripKnownConductors(album string) string {
	for _, m := range bracketed.FindAllStringSubmatch(album, -1) {
		if c, ok := s.store.FindConductor(m[1]); ok {
			album = titles.StripBracketedName(album, c.Name)
			album = titles.StripBracketedName(album, m[1])
		}
	}
	return album
}

// keepShared restores the value read by get on every record of out when all
// records of in agreed on a non-empty value and out no longer does.
func keepShared(in, out []record.Record, get func(record.Record) string, restore func(*record.Record, record.Record)) {
	if len(in) < 2 {
		return
	}
	if !allEqual(in, get) || get(in[0]) == "" || allEqual(out, get) {
		return
	}
	for i := range out {
		restore(&out[i], in[i])
	}
	log.Debug().Str("value", get(in[0])).Msg("shared value restored across batch")
}

func allEqual(list []record.Record, get func(record.Record) string) bool {
	for _, r := range list[1:] {
		if get(r) != get(list[0]) {
			return false
		}
	}
	return true
}
