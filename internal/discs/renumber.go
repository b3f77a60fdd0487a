package discs

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/dpetit12345/classical-fixes/internal/names"
	"github.com/dpetit12345/classical-fixes/internal/record"
)

// RenumberSequential returns copies of records with tracks numbered from 1
// in (album artist, album, disc, track) order, restarting for each album,
// and every disc set to 1. The previous disc and track numbers are kept in
// the original fields unless those are already set, so running it twice
// keeps the true originals. The result is in input order.
func RenumberSequential(records []record.Record) []record.Record {
	type sortKey struct {
		albumArtist string
		album       string
		disc        int
		track       int
	}
	keys := make([]sortKey, len(records))
	order := make([]int, len(records))
	for i, r := range records {
		keys[i] = sortKey{
			albumArtist: names.MakeKey(r.AlbumArtistDisplay()),
			album:       names.MakeKey(r.Album),
			disc:        r.DiscNumber,
			track:       r.TrackNumber,
		}
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ka, kb := keys[a], keys[b]
		return cmp.Or(
			cmp.Compare(ka.albumArtist, kb.albumArtist),
			cmp.Compare(ka.album, kb.album),
			cmp.Compare(ka.disc, kb.disc),
			cmp.Compare(ka.track, kb.track),
		)
	})

	out := make([]record.Record, len(records))
	track := 0
	for pos, i := range order {
		if pos == 0 || keys[i].albumArtist != keys[order[pos-1]].albumArtist || keys[i].album != keys[order[pos-1]].album {
			track = 0
		}
		track++

		r := records[i].Clone()
		if r.OriginalDiscNumber == "" {
			r.OriginalDiscNumber = strconv.Itoa(r.DiscNumber)
		}
		if r.OriginalTrackNumber == "" {
			r.OriginalTrackNumber = strconv.Itoa(r.TrackNumber)
		}
		r.DiscNumber = 1
		r.TrackNumber = track
		if r.TotalDiscs > 0 {
			r.TotalDiscs = 1
		}
		out[i] = r
	}
	return out
}
