package record

import (
	"strconv"
	"strings"
)

// Tag keys in their canonical (Vorbis comment style) spelling. Hosts map
// them onto their own storage; the tags package maps them onto ID3, MP4
// atoms and Vorbis comments.
const (
	KeyTitle               = "TITLE"
	KeyAlbum               = "ALBUM"
	KeyTrackNumber         = "TRACKNUMBER"
	KeyDiscNumber          = "DISCNUMBER"
	KeyTotalDiscs          = "TOTALDISCS"
	KeyOriginalTrackNumber = "ORIGTRACKNUMBER"
	KeyOriginalDiscNumber  = "ORIGDISCNUMBER"
	KeyArtist              = "ARTIST"
	KeyAlbumArtist         = "ALBUMARTIST"
	KeyAlbumArtistMirror   = "ALBUM ARTIST"
	KeyComposer            = "COMPOSER"
	KeyComposerSort        = "COMPOSERSORT"
	KeyComposerView        = "COMPOSER VIEW"
	KeyEpoque              = "EPOQUE"
	KeyConductor           = "CONDUCTOR"
	KeyOrchestra           = "ORCHESTRA"
	KeyGenre               = "GENRE"
	KeyOrigGenre           = "ORIGGENRE"
	KeyDate                = "DATE"
	KeyFixedAt             = "CLASSICALFIXESDATE"
)

// ManagedKeys lists every key written by Tags. Writers clear these before
// writing so that fields emptied by a fix are removed from the file.
var ManagedKeys = []string{
	KeyTitle, KeyAlbum, KeyTrackNumber, KeyDiscNumber, KeyTotalDiscs,
	KeyOriginalTrackNumber, KeyOriginalDiscNumber, KeyArtist, KeyAlbumArtist,
	KeyAlbumArtistMirror, KeyComposer, KeyComposerSort, KeyComposerView,
	KeyEpoque, KeyConductor, KeyOrchestra, KeyGenre, KeyOrigGenre, KeyDate,
	KeyFixedAt,
}

// IsManagedKey reports whether key (any case) is one of ManagedKeys.
func IsManagedKey(key string) bool {
	key = strings.ToUpper(strings.TrimSpace(key))
	for _, k := range ManagedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Tags renders r as a multi-valued tag map. Empty fields map to an empty
// slice so writers can delete them. The album artist is emitted under both
// KeyAlbumArtist and KeyAlbumArtistMirror with the same joined value.
func Tags(r Record) map[string][]string {
	m := make(map[string][]string, len(ManagedKeys))
	set := func(k, v string) {
		if v == "" {
			m[k] = nil
			return
		}
		m[k] = []string{v}
	}
	setInt := func(k string, v int) {
		if v <= 0 {
			m[k] = nil
			return
		}
		m[k] = []string{strconv.Itoa(v)}
	}

	set(KeyTitle, r.Title)
	set(KeyAlbum, r.Album)
	setInt(KeyTrackNumber, r.TrackNumber)
	setInt(KeyDiscNumber, r.DiscNumber)
	setInt(KeyTotalDiscs, r.TotalDiscs)
	set(KeyOriginalTrackNumber, r.OriginalTrackNumber)
	set(KeyOriginalDiscNumber, r.OriginalDiscNumber)

	m[KeyArtist] = nonEmpty(r.Artist)
	set(KeyAlbumArtist, r.AlbumArtistDisplay())
	set(KeyAlbumArtistMirror, r.AlbumArtistDisplay())

	set(KeyComposer, r.Composer)
	set(KeyComposerSort, r.ComposerSort)
	set(KeyComposerView, r.ComposerView)
	set(KeyEpoque, r.Epoque)
	set(KeyConductor, r.Conductor)
	set(KeyOrchestra, r.Orchestra)
	set(KeyGenre, r.Genre)
	set(KeyOrigGenre, r.OrigGenre)
	set(KeyDate, r.Date)
	set(KeyFixedAt, r.FixedAt)
	return m
}

// FromTags builds a Record from a tag map with keys in any case. The
// mirrored "Album Artist" key is read only when AlbumArtist is absent.
// Single-valued album artist strings are split on the credit separator.
func FromTags(id string, tags map[string][]string) Record {
	upper := make(map[string][]string, len(tags))
	for k, v := range tags {
		k = strings.ToUpper(strings.TrimSpace(k))
		upper[k] = append(upper[k], v...)
	}
	first := func(k string) string {
		for _, v := range upper[k] {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
		return ""
	}

	r := Record{
		ID:                  id,
		Title:               first(KeyTitle),
		Album:               first(KeyAlbum),
		TrackNumber:         ParseNumber(first(KeyTrackNumber)),
		DiscNumber:          ParseNumber(first(KeyDiscNumber)),
		TotalDiscs:          ParseNumber(first(KeyTotalDiscs)),
		OriginalTrackNumber: first(KeyOriginalTrackNumber),
		OriginalDiscNumber:  first(KeyOriginalDiscNumber),
		Artist:              splitCredits(upper[KeyArtist]),
		AlbumArtist:         splitCredits(upper[KeyAlbumArtist]),
		Composer:            first(KeyComposer),
		ComposerSort:        first(KeyComposerSort),
		ComposerView:        first(KeyComposerView),
		Epoque:              first(KeyEpoque),
		Conductor:           first(KeyConductor),
		Orchestra:           first(KeyOrchestra),
		Genre:               first(KeyGenre),
		OrigGenre:           first(KeyOrigGenre),
		Date:                first(KeyDate),
		FixedAt:             first(KeyFixedAt),
	}
	if len(r.AlbumArtist) == 0 {
		r.AlbumArtist = splitCredits(upper[KeyAlbumArtistMirror])
	}
	if r.TotalDiscs == 0 {
		r.TotalDiscs = ParseNumber(first("DISCTOTAL"))
	}
	return r
}

// ParseNumber parses "5" or "5/12" and returns 0 when no number is present.
func ParseNumber(s string) int {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func splitCredits(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ";") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
