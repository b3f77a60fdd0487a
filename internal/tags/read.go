package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

// Read reads every tag of a music file. Common fields come from
// dhowden/tag; format-specific readers add the custom keys (composer view,
// epoque, original numbers) and win on conflicts.
func Read(path string) (Map, error) {
	base, baseErr := readBase(path)

	var extended Map
	var err error
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ExtMP3:
		extended, err = readMP3(path)
	case ExtFLAC:
		extended, err = readFLAC(path)
	case ExtOPUS, ExtOGG, ExtOGA, ExtM4A, ExtMP4:
		extended, err = readTaglib(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
	if err != nil && baseErr != nil {
		return nil, err
	}

	out := Map{}
	out.merge(base)
	out.merge(extended)
	out.splitPairs()
	return out, nil
}

// ReadRecord reads path as a Record whose ID is the path.
func ReadRecord(path string) (record.Record, error) {
	m, err := Read(path)
	if err != nil {
		return record.Record{}, err
	}
	return record.FromTags(path, m), nil
}

// readBase reads the fields dhowden/tag understands for every format.
func readBase(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	out := Map{}
	out.add(record.KeyTitle, m.Title())
	out.add(record.KeyAlbum, m.Album())
	out.add(record.KeyArtist, m.Artist())
	out.add(record.KeyAlbumArtist, m.AlbumArtist())
	out.add(record.KeyComposer, m.Composer())
	out.add(record.KeyGenre, m.Genre())
	if y := m.Year(); y > 0 {
		out.add(record.KeyDate, strconv.Itoa(y))
	}
	if track, _ := m.Track(); track > 0 {
		out.add(record.KeyTrackNumber, strconv.Itoa(track))
	}
	if disc, total := m.Disc(); disc > 0 {
		out.add(record.KeyDiscNumber, strconv.Itoa(disc))
		if total > 0 {
			out.add(record.KeyTotalDiscs, strconv.Itoa(total))
		}
	}
	return out, nil
}

// readTaglib reads Ogg and MP4 properties through TagLib, which already
// reports them under Vorbis-style names.
func readTaglib(path string) (Map, error) {
	raw, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	out := Map{}
	for k, v := range raw {
		out.add(k, v...)
	}
	return out, nil
}
