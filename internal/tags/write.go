package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.senan.xyz/taglib"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

// Write updates the given keys of a music file in place. Keys with no
// values are removed where the format allows it; keys absent from tags are
// left untouched.
func Write(path string, tags Map) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtMP3:
		return writeMP3(path, tags)
	case ExtFLAC:
		return writeFLAC(path, tags)
	case ExtOPUS, ExtOGG, ExtOGA:
		return writeOgg(path, tags)
	case ExtM4A, ExtMP4:
		return writeM4A(path, tags)
	}
	return fmt.Errorf("unsupported file format: %s", ext)
}

// WriteRecord writes the managed keys of r to the file at path.
func WriteRecord(path string, r record.Record) error {
	return Write(path, record.Tags(r))
}

// writeOgg writes Vorbis comments to an Opus or Ogg file using TagLib.
// Without the Clear option TagLib replaces only the keys given and removes
// the ones mapped to no values.
func writeOgg(path string, tags Map) error {
	if err := taglib.WriteTags(path, tags, 0); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	return nil
}
