package tags

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

// id3Frames maps record keys to the standard ID3v2.4 text frames. Keys
// without a frame are stored as TXXX frames named after the key.
var id3Frames = map[string]string{
	record.KeyTitle:        "TIT2",
	record.KeyAlbum:        "TALB",
	record.KeyArtist:       "TPE1",
	record.KeyAlbumArtist:  "TPE2",
	record.KeyConductor:    "TPE3",
	record.KeyComposer:     "TCOM",
	record.KeyComposerSort: "TSOC",
	record.KeyGenre:        "TCON",
	record.KeyDate:         "TDRC",
	record.KeyTrackNumber:  "TRCK",
	record.KeyDiscNumber:   "TPOS",
}

// readMP3 reads the text and TXXX frames of an MP3 file.
func readMP3(path string) (Map, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	out := Map{}
	for key, frameID := range id3Frames {
		out.add(key, getID3TextFrame(id3tag, frameID))
	}
	if out.get(record.KeyDate) == "" {
		// ID3v2.3
		out.add(record.KeyDate, getID3TextFrame(id3tag, "TYER"))
	}
	for _, frame := range id3tag.GetFrames("TXXX") {
		if txxx, ok := frame.(id3v2.UserDefinedTextFrame); ok {
			out.add(txxx.Description, txxx.Value)
		}
	}
	return out, nil
}

// writeMP3 updates the frames of the keys in tags and leaves every other
// frame alone. Keys with no values are removed.
func writeMP3(path string, tags Map) error {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if errors.Is(err, id3v2.ErrUnsupportedVersion) {
		// ID3v2.2 or older tags - strip them and retry
		if stripErr := stripID3v2Tag(path); stripErr != nil {
			return fmt.Errorf("strip unsupported ID3v2.2 tag: %w", stripErr)
		}
		id3tag, err = id3v2.Open(path, id3v2.Options{Parse: true})
	}
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer id3tag.Close()

	id3tag.SetVersion(4)
	id3tag.SetDefaultEncoding(id3v2.EncodingUTF8)

	// Keep the user-defined frames we do not manage.
	var kept []id3v2.UserDefinedTextFrame
	for _, frame := range id3tag.GetFrames("TXXX") {
		txxx, ok := frame.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		if _, managed := tags[strings.ToUpper(txxx.Description)]; !managed {
			kept = append(kept, txxx)
		}
	}
	id3tag.DeleteFrames("TXXX")
	for _, txxx := range kept {
		id3tag.AddUserDefinedTextFrame(txxx)
	}

	for _, key := range tags.sortedKeys() {
		value := strings.Join(tags[key], record.CreditSeparator)
		switch key {
		case record.KeyTotalDiscs:
			continue
		case record.KeyDiscNumber:
			if value != "" {
				if total := tags.get(record.KeyTotalDiscs); total != "" {
					value += "/" + total
				}
			}
		case record.KeyDate:
			id3tag.DeleteFrames("TYER")
		}

		frameID, ok := id3Frames[key]
		if !ok {
			addTXXXFrame(id3tag, key, value)
			continue
		}
		id3tag.DeleteFrames(frameID)
		if value != "" {
			id3tag.AddTextFrame(frameID, id3v2.EncodingUTF8, value)
		}
	}

	if err := id3tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// addTXXXFrame adds a TXXX (user-defined text) frame if the value is non-empty.
func addTXXXFrame(id3tag *id3v2.Tag, description, value string) {
	if value == "" {
		return
	}
	id3tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    id3v2.EncodingUTF8,
		Description: description,
		Value:       value,
	})
}

// stripID3v2Tag removes ID3v2 tags from an MP3 file.
// This is used to handle ID3v2.2 tags which the id3v2 library doesn't support.
func stripID3v2Tag(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if len(data) < 10 || string(data[:3]) != id3Magic {
		return nil
	}

	// Synchsafe size, 7 bits per byte.
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	tagSize := size + 10

	// footer flag, ID3v2.4 only
	if data[5]&0x10 != 0 {
		tagSize += 10
	}

	if tagSize >= len(data) {
		return fmt.Errorf("ID3v2 tag size (%d) exceeds file size (%d)", tagSize, len(data))
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if err := os.WriteFile(path, data[tagSize:], info.Mode()); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
