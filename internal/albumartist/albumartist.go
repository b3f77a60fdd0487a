// Package albumartist puts album artist credits into canonical order and
// keeps artist and album artist consistent with the assigned roles.
package albumartist

import (
	"strings"

	"github.com/dpetit12345/classical-fixes/internal/names"
	"github.com/dpetit12345/classical-fixes/internal/record"
)

// VariousArtists replaces a bare "Various" album artist.
const VariousArtists = "Various Artists"

// Composer orders credits. Threshold is the similarity above which a credit
// counts as a spelling of a role's name.
type Composer struct {
	Threshold float64
}

// New returns a Composer; a non-positive threshold selects
// names.DefaultSimilarityThreshold.
func New(threshold float64) *Composer {
	if threshold <= 0 {
		threshold = names.DefaultSimilarityThreshold
	}
	return &Composer{Threshold: threshold}
}

// Reorder returns a copy of r whose album artist is the conductor, then the
// orchestra, then the remaining album artist credits in their original
// order, deduplicated. Credits naming the composer are removed from both
// lists unless that would leave the list empty.
func (c *Composer) Reorder(r record.Record) record.Record {
	out := r.Clone()

	var aa []string
	if out.Conductor != "" {
		aa = append(aa, out.Conductor)
	}
	if out.Orchestra != "" {
		aa = append(aa, out.Orchestra)
	}
	for _, n := range out.AlbumArtist {
		if c.refersTo(n, out.Conductor) || c.refersTo(n, out.Orchestra) {
			continue
		}
		aa = append(aa, n)
	}
	out.AlbumArtist = dedupe(aa)

	if out.Composer != "" {
		out.Artist = c.withoutComposer(out.Artist, out.Composer)
		out.AlbumArtist = c.withoutComposer(out.AlbumArtist, out.Composer)
	}
	return out
}

// Finish applies the final credit rules to r: "Various" becomes
// "Various Artists" and an empty artist or album artist list is filled from
// the other one.
func (c *Composer) Finish(r record.Record) record.Record {
	out := r.Clone()
	if len(out.AlbumArtist) == 1 && strings.EqualFold(strings.TrimSpace(out.AlbumArtist[0]), "various") {
		out.AlbumArtist = []string{VariousArtists}
	}
	switch {
	case len(out.Artist) == 0 && len(out.AlbumArtist) > 0:
		out.Artist = append([]string(nil), out.AlbumArtist...)
	case len(out.AlbumArtist) == 0 && len(out.Artist) > 0:
		out.AlbumArtist = append([]string(nil), out.Artist...)
	}
	return out
}

// Apply runs Reorder then Finish.
func (c *Composer) Apply(r record.Record) record.Record {
	return c.Finish(c.Reorder(r))
}

// refersTo reports whether credit refers to name: same key, its last name or
// initials form, a close spelling, or a whole-word fragment of it.
func (c *Composer) refersTo(credit, name string) bool {
	if credit == "" || name == "" {
		return false
	}
	ck := names.MakeKey(credit)
	if ck == "" {
		return false
	}
	switch ck {
	case names.MakeKey(name), names.MakeKey(names.LastName(name)), names.InitialsKey(name):
		return true
	}
	return names.AreSimilar(credit, name, c.Threshold) || names.ContainsName(credit, name)
}

func (c *Composer) withoutComposer(list []string, composer string) []string {
	kept := make([]string, 0, len(list))
	for _, n := range list {
		if !c.refersTo(n, composer) {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		return list
	}
	return kept
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, n := range list {
		k := names.MakeKey(n)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, n)
	}
	return out
}
