package services

import "github.com/desertthunder/tunelink/internal/models"

func trackFixture(title, artist string) models.Track {
	track := models.Track{Title: title, Platform: "test"}
	if artist != "" {
		track.Artists = []string{artist}
	}
	return track
}

func albumFixture(title, artist string) models.Album {
	album := models.Album{Title: title, Platform: "test"}
	if artist != "" {
		album.Artists = []string{artist}
	}
	return album
}
