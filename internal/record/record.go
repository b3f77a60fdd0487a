// Package record defines the taggable unit the classical fixes operate on
// and the boundary through which a host application loads and stores it.
package record

import (
	"slices"
	"strings"
)

// CreditSeparator joins multi-valued credits when a single string is needed.
const CreditSeparator = "; "

// Record is a single taggable unit: one file or one cluster representative.
//
// OriginalTrackNumber and OriginalDiscNumber hold the pre-renumber values as
// written in the tags. An empty string means the record was never renumbered,
// so a genuine prior value of 0 still round-trips.
type Record struct {
	ID string

	Title       string
	Album       string
	TrackNumber int
	DiscNumber  int
	TotalDiscs  int

	OriginalTrackNumber string
	OriginalDiscNumber  string

	Artist      []string
	AlbumArtist []string

	Composer     string
	ComposerSort string
	ComposerView string
	Epoque       string
	Conductor    string
	Orchestra    string

	Genre     string
	OrigGenre string
	Date      string

	// FixedAt is the time of the last classical fix that changed the record.
	FixedAt string
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	c.Artist = slices.Clone(r.Artist)
	c.AlbumArtist = slices.Clone(r.AlbumArtist)
	return c
}

// Equal reports whether r and o carry the same tag values.
// Nil and empty credit lists are equal.
func (r Record) Equal(o Record) bool {
	return r.ID == o.ID &&
		r.Title == o.Title &&
		r.Album == o.Album &&
		r.TrackNumber == o.TrackNumber &&
		r.DiscNumber == o.DiscNumber &&
		r.TotalDiscs == o.TotalDiscs &&
		r.OriginalTrackNumber == o.OriginalTrackNumber &&
		r.OriginalDiscNumber == o.OriginalDiscNumber &&
		slices.Equal(r.Artist, o.Artist) &&
		slices.Equal(r.AlbumArtist, o.AlbumArtist) &&
		r.Composer == o.Composer &&
		r.ComposerSort == o.ComposerSort &&
		r.ComposerView == o.ComposerView &&
		r.Epoque == o.Epoque &&
		r.Conductor == o.Conductor &&
		r.Orchestra == o.Orchestra &&
		r.Genre == o.Genre &&
		r.OrigGenre == o.OrigGenre &&
		r.Date == o.Date &&
		r.FixedAt == o.FixedAt
}

// AlbumArtistDisplay is the single-string form of the album artist credits,
// emitted under both the AlbumArtist and the mirrored "Album Artist" keys.
func (r Record) AlbumArtistDisplay() string {
	return strings.Join(r.AlbumArtist, CreditSeparator)
}

// ArtistDisplay is the single-string form of the artist credits.
func (r Record) ArtistDisplay() string {
	return strings.Join(r.Artist, CreditSeparator)
}
