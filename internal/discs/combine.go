// Package discs merges the discs of a multi-disc release into one album
// and renumbers tracks sequentially.
package discs

import (
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/dpetit12345/classical-fixes/internal/names"
	"github.com/dpetit12345/classical-fixes/internal/record"
	"github.com/dpetit12345/classical-fixes/internal/titles"
)

// Combine validates that every record of group has the same album once
// disc markers are stripped and the same set of album artists, then returns
// copies with the shared album title, the album artist of the first disc,
// disc numbers taken from each record's disc marker, the disc count, and
// the date of the first disc. When validation fails nothing is returned and
// the input is untouched.
func Combine(group []record.Record) ([]record.Record, error) {
	if len(group) == 0 {
		return nil, ErrEmptyGroup
	}

	base := titles.CleanAlbumTitle(group[0].Album)
	artists := artistSet(group[0].AlbumArtist)
	for _, r := range group[1:] {
		if b := titles.CleanAlbumTitle(r.Album); b != base {
			return nil, &GroupMismatchError{
				First:  group[0].ID,
				Second: r.ID,
				Reason: fmt.Sprintf("album %q != %q", base, b),
			}
		}
		if !maps.Equal(artists, artistSet(r.AlbumArtist)) {
			return nil, &GroupMismatchError{
				First:  group[0].ID,
				Second: r.ID,
				Reason: "album artists differ",
			}
		}
	}

	out := make([]record.Record, len(group))
	discSet := make(map[int]bool)
	first := 0
	for i, r := range group {
		out[i] = r.Clone()
		disc, ok := titles.DiscNumberFromAlbum(r.Album)
		if !ok {
			disc = r.DiscNumber
		}
		if disc <= 0 {
			disc = 1
		}
		out[i].DiscNumber = disc
		discSet[disc] = true
		if disc < out[first].DiscNumber {
			first = i
		}
	}

	albumArtist := slices.Clone(out[first].AlbumArtist)
	date := out[first].Date
	for i := range out {
		out[i].Album = base
		out[i].AlbumArtist = slices.Clone(albumArtist)
		out[i].TotalDiscs = len(discSet)
		if date != "" {
			out[i].Date = date
		}
	}

	log.Info().
		Str("album", base).
		Int("records", len(out)).
		Int("discs", len(discSet)).
		Msg("discs combined")
	return out, nil
}

func artistSet(list []string) map[string]bool {
	set := make(map[string]bool, len(list))
	for _, n := range names.ExpandList(list) {
		set[names.MakeKey(n)] = true
	}
	return set
}
