package tags

import (
	"fmt"
	"strings"

	"github.com/Sorrow446/go-mp4tag"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

// writeM4A writes the keys in tags with go-mp4tag. Keys without a standard
// atom become freeform iTunes atoms. Emptied keys are skipped rather than
// deleted, so a cleared field keeps its previous value in M4A files.
func writeM4A(path string, tags Map) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer mp4.Close()

	joined := func(key string) string {
		return strings.Join(tags[key], record.CreditSeparator)
	}
	number := func(key string) int16 {
		return safeInt16(record.ParseNumber(tags.get(key)))
	}

	out := &mp4tag.MP4Tags{
		Title:       joined(record.KeyTitle),
		Artist:      joined(record.KeyArtist),
		Album:       joined(record.KeyAlbum),
		AlbumArtist: joined(record.KeyAlbumArtist),
		Composer:    joined(record.KeyComposer),
		TrackNumber: number(record.KeyTrackNumber),
		DiscNumber:  number(record.KeyDiscNumber),
		DiscTotal:   number(record.KeyTotalDiscs),
		Date:        joined(record.KeyDate),
		CustomGenre: joined(record.KeyGenre),
		Custom:      make(map[string]string),
	}

	standard := map[string]bool{
		record.KeyTitle: true, record.KeyArtist: true, record.KeyAlbum: true,
		record.KeyAlbumArtist: true, record.KeyComposer: true,
		record.KeyTrackNumber: true, record.KeyDiscNumber: true,
		record.KeyTotalDiscs: true, record.KeyDate: true, record.KeyGenre: true,
	}
	for _, key := range tags.sortedKeys() {
		if standard[key] {
			continue
		}
		if v := joined(key); v != "" {
			out.Custom[key] = v
		}
	}

	if err := mp4.Write(out, nil); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// safeInt16 converts int to int16 with bounds checking.
func safeInt16(n int) int16 {
	if n > 32767 {
		return 32767
	}
	if n < -32768 {
		return -32768
	}
	return int16(n)
}

