package match

import (
	"reflect"
	"testing"

	"github.com/desertthunder/tunelink/internal/models"
)

func TestTrackQueries(t *testing.T) {
	tc := []struct {
		name  string
		track models.Track
		want  []string
	}{
		{
			name:  "artist and title",
			track: models.Track{Title: "Hello", Artists: []string{"Adele"}},
			want:  []string{"Adele Hello", "Hello"},
		},
		{
			name:  "title only",
			track: models.Track{Title: "Intro"},
			want:  []string{"Intro"},
		},
		{
			name:  "secondary artists ignored",
			track: models.Track{Title: "Hello", Artists: []string{"Adele", "Someone Else"}},
			want:  []string{"Adele Hello", "Hello"},
		},
		{
			name:  "blank primary artist falls through",
			track: models.Track{Title: "Hello", Artists: []string{"  ", "Adele"}},
			want:  []string{"Adele Hello", "Hello"},
		},
		{
			name:  "undefined artist skipped entirely",
			track: models.Track{Title: "Hello", Artists: []string{"undefined"}},
			want:  []string{"Hello"},
		},
		{
			name:  "undefined title yields nothing",
			track: models.Track{Title: "undefined", Artists: []string{"Adele"}},
			want:  nil,
		},
		{
			name:  "empty source yields nothing",
			track: models.Track{},
			want:  nil,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := TrackQueries(tt.track)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TrackQueries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlbumQueries(t *testing.T) {
	tc := []struct {
		name  string
		album models.Album
		want  []string
	}{
		{
			name:  "artist and title with album keyword",
			album: models.Album{Title: "25", Artists: []string{"Adele"}},
			want:  []string{"Adele 25 album", "25 album"},
		},
		{
			name:  "title only",
			album: models.Album{Title: "25"},
			want:  []string{"25 album"},
		},
		{
			name:  "empty title yields nothing",
			album: models.Album{Artists: []string{"Adele"}},
			want:  nil,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := AlbumQueries(tt.album)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AlbumQueries() = %v, want %v", got, tt.want)
			}
		})
	}
}
