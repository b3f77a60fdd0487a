package tags

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// readFLAC reads the Vorbis comments of a FLAC file, falling back to TagLib
// for files go-flac cannot parse.
func readFLAC(path string) (Map, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return readTaglib(path)
	}
	out := Map{}
	cmts, _, err := vorbisComments(f)
	if err != nil || cmts == nil {
		return out, err
	}
	for _, c := range cmts.Comments {
		if k, v, ok := strings.Cut(c, "="); ok {
			out.add(k, v)
		}
	}
	return out, nil
}

// vorbisComments returns the parsed comment block of f and its index, or a
// nil block and -1 when f has none.
func vorbisComments(f *flac.File) (*flacvorbis.MetaDataBlockVorbisComment, int, error) {
	for i, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}
		cmts, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			return nil, i, fmt.Errorf("parse vorbis comments: %w", err)
		}
		return cmts, i, nil
	}
	return nil, -1, nil
}

// writeFLAC rewrites the comments of the keys in tags, keeping every other
// comment and the vendor string.
func writeFLAC(path string, tags Map) error {
	f, id3Size, err := parseFLACWithID3Support(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	if id3Size > 0 {
		if err := stripID3v2Header(path, id3Size); err != nil {
			return fmt.Errorf("strip ID3v2 header: %w", err)
		}
		f, err = flac.ParseFile(path)
		if err != nil {
			return fmt.Errorf("parse file after ID3 strip: %w", err)
		}
	}

	old, cmtIdx, err := vorbisComments(f)
	if err != nil {
		return err
	}

	cmts := flacvorbis.New()
	if old != nil {
		cmts.Vendor = old.Vendor
		for _, c := range old.Comments {
			k, _, _ := strings.Cut(c, "=")
			if _, managed := tags[strings.ToUpper(k)]; !managed {
				cmts.Comments = append(cmts.Comments, c)
			}
		}
	}
	for _, key := range tags.sortedKeys() {
		for _, v := range tags[key] {
			if v == "" {
				continue
			}
			if err := cmts.Add(key, v); err != nil {
				return fmt.Errorf("add %s: %w", strings.ToLower(key), err)
			}
		}
	}

	cmtBlock := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &cmtBlock
	} else {
		f.Meta = append(f.Meta, &cmtBlock)
	}

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

// parseFLACWithID3Support parses a FLAC file, handling ID3v2 headers if present.
// Returns the parsed FLAC file, the size of any ID3v2 header found, and any error.
func parseFLACWithID3Support(path string) (*flac.File, int64, error) {
	f, err := flac.ParseFile(path)
	if err == nil {
		return f, 0, nil
	}

	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, 0, err
	}
	defer file.Close()

	header := make([]byte, 10)
	if _, readErr := io.ReadFull(file, header); readErr != nil {
		return nil, 0, err
	}
	if !bytes.Equal(header[:3], []byte(id3Magic)) {
		return nil, 0, err
	}

	// Synchsafe size, 7 bits per byte.
	id3Size := int64(10)
	id3Size += int64(header[6]&0x7f)<<21 |
		int64(header[7]&0x7f)<<14 |
		int64(header[8]&0x7f)<<7 |
		int64(header[9]&0x7f)

	if header[5]&0x40 != 0 {
		extHeader := make([]byte, 4)
		if _, seekErr := file.Seek(10, io.SeekStart); seekErr != nil {
			return nil, 0, err
		}
		if _, readErr := io.ReadFull(file, extHeader); readErr != nil {
			return nil, 0, err
		}
		id3Size += int64(extHeader[0]&0x7f)<<21 |
			int64(extHeader[1]&0x7f)<<14 |
			int64(extHeader[2]&0x7f)<<7 |
			int64(extHeader[3]&0x7f)
	}

	if _, seekErr := file.Seek(id3Size, io.SeekStart); seekErr != nil {
		return nil, 0, err
	}
	flacMagic := make([]byte, 4)
	if _, readErr := io.ReadFull(file, flacMagic); readErr != nil {
		return nil, 0, err
	}
	if !bytes.Equal(flacMagic, []byte("fLaC")) {
		return nil, 0, errors.New("no fLaC marker found after ID3v2 header")
	}
	return nil, id3Size, nil
}

// stripID3v2Header removes ID3v2 header from a file by rewriting it.
func stripID3v2Header(path string, id3Size int64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if int64(len(data)) <= id3Size {
		return errors.New("file too small to strip ID3v2 header")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data[id3Size:], info.Mode().Perm())
}
