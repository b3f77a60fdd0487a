// Package tags reads and writes the classical metadata of music files.
// Record tag keys map onto ID3v2 frames for MP3, MP4 atoms for M4A and
// Vorbis comments for FLAC, Opus and Ogg.
package tags

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// File extensions supported by the tags package.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtOGA  = ".oga"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// Map is a multi-valued tag map keyed by upper-case tag name.
type Map map[string][]string

// IsMusicFile returns true if the path has a supported music file extension.
func IsMusicFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		return true
	}
	return false
}

// get returns the first non-empty value for any of the given keys.
func (m Map) get(keys ...string) string {
	for _, key := range keys {
		for _, v := range m[key] {
			if v != "" {
				return v
			}
		}
	}
	return ""
}

// add appends the non-empty values to key.
func (m Map) add(key string, values ...string) {
	key = strings.ToUpper(strings.TrimSpace(key))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			m[key] = append(m[key], v)
		}
	}
}

// merge copies every non-empty key of o into m, replacing m's values.
func (m Map) merge(o Map) {
	for k, v := range o {
		if len(v) > 0 {
			m[k] = slices.Clone(v)
		}
	}
}

// sortedKeys returns the keys of m in a stable order for writers.
func (m Map) sortedKeys() []string {
	return slices.Sorted(maps.Keys(m))
}

// splitPairs moves the total of "N/M" track and disc numbers into its own
// key when that key is not already set.
func (m Map) splitPairs() {
	pairs := [][2]string{
		{"TRACKNUMBER", "TOTALTRACKS"},
		{"DISCNUMBER", "TOTALDISCS"},
	}
	for _, p := range pairs {
		n, total, ok := strings.Cut(m.get(p[0]), "/")
		if !ok {
			continue
		}
		m[p[0]] = []string{strings.TrimSpace(n)}
		if m.get(p[1]) == "" {
			m.add(p[1], total)
		}
	}
}
