package albumartist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dpetit12345/classical-fixes/internal/record"
)

func TestReorder(t *testing.T) {
	c := New(0)

	tests := []struct {
		name        string
		in          record.Record
		wantAA      []string
		wantArtists []string
	}{
		{
			name: "conductor and orchestra first",
			in: record.Record{
				Conductor:   "Herbert von Karajan",
				Orchestra:   "Berlin Philharmonic Orchestra",
				AlbumArtist: []string{"Anne-Sophie Mutter", "Berlin Philharmonic Orchestra", "Karajan"},
			},
			wantAA: []string{"Herbert von Karajan", "Berlin Philharmonic Orchestra", "Anne-Sophie Mutter"},
		},
		{
			name: "fragment and spelling variants removed",
			in: record.Record{
				Conductor:   "Herbert von Karajan",
				Orchestra:   "Berlin Philharmonic Orchestra",
				AlbumArtist: []string{"Herbert v. Karajan", "Berlin Philharmonic"},
			},
			wantAA: []string{"Herbert von Karajan", "Berlin Philharmonic Orchestra"},
		},
		{
			name:   "only remaining credits",
			in:     record.Record{AlbumArtist: []string{"Glenn Gould", "Yo-Yo Ma"}},
			wantAA: []string{"Glenn Gould", "Yo-Yo Ma"},
		},
		{
			name:   "duplicates keep first",
			in:     record.Record{AlbumArtist: []string{"Glenn Gould", "glenn gould", "Yo-Yo Ma"}},
			wantAA: []string{"Glenn Gould", "Yo-Yo Ma"},
		},
		{
			name: "composer removed from both lists",
			in: record.Record{
				Composer:    "Johann Sebastian Bach",
				Artist:      []string{"J.S. Bach", "Glenn Gould"},
				AlbumArtist: []string{"Bach", "Glenn Gould"},
			},
			wantAA:      []string{"Glenn Gould"},
			wantArtists: []string{"Glenn Gould"},
		},
		{
			name: "composer kept when it is the only credit",
			in: record.Record{
				Composer:    "Johann Sebastian Bach",
				Artist:      []string{"Johann Sebastian Bach"},
				AlbumArtist: []string{"Johann Sebastian Bach"},
			},
			wantAA:      []string{"Johann Sebastian Bach"},
			wantArtists: []string{"Johann Sebastian Bach"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Reorder(tt.in)
			assert.Equal(t, tt.wantAA, got.AlbumArtist)
			if tt.wantArtists != nil {
				assert.Equal(t, tt.wantArtists, got.Artist)
			}
		})
	}
}

func TestReorder_DoesNotMutateInput(t *testing.T) {
	in := record.Record{Conductor: "Georg Solti", AlbumArtist: []string{"Chicago Symphony Orchestra"}}

	_ = New(0).Reorder(in)

	assert.Equal(t, []string{"Chicago Symphony Orchestra"}, in.AlbumArtist)
}

func TestFinish(t *testing.T) {
	c := New(0)

	tests := []struct {
		name        string
		in          record.Record
		wantArtist  []string
		wantAlbumAA []string
	}{
		{
			name:        "various",
			in:          record.Record{Artist: []string{"Glenn Gould"}, AlbumArtist: []string{"Various"}},
			wantArtist:  []string{"Glenn Gould"},
			wantAlbumAA: []string{"Various Artists"},
		},
		{
			name:        "artist from album artist",
			in:          record.Record{AlbumArtist: []string{"Herbert von Karajan", "Berlin Philharmonic Orchestra"}},
			wantArtist:  []string{"Herbert von Karajan", "Berlin Philharmonic Orchestra"},
			wantAlbumAA: []string{"Herbert von Karajan", "Berlin Philharmonic Orchestra"},
		},
		{
			name:        "album artist from artist",
			in:          record.Record{Artist: []string{"Martha Argerich"}},
			wantArtist:  []string{"Martha Argerich"},
			wantAlbumAA: []string{"Martha Argerich"},
		},
		{
			name: "both empty",
			in:   record.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Finish(tt.in)
			assert.Equal(t, tt.wantArtist, got.Artist)
			assert.Equal(t, tt.wantAlbumAA, got.AlbumArtist)
		})
	}
}

func TestApply_MirroredAlbumArtist(t *testing.T) {
	got := New(0).Apply(record.Record{
		Conductor: "Herbert von Karajan",
		Orchestra: "Berlin Philharmonic Orchestra",
	})

	tags := record.Tags(got)
	assert.Equal(t, tags[record.KeyAlbumArtist], tags[record.KeyAlbumArtistMirror])
	assert.Equal(t, []string{"Herbert von Karajan; Berlin Philharmonic Orchestra"}, tags[record.KeyAlbumArtistMirror])
	assert.Equal(t, got.AlbumArtist, got.Artist)
}
