package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/shared"
)

// LinkKind distinguishes track links from album links.
type LinkKind string

const (
	KindTrack LinkKind = "track"
	KindAlbum LinkKind = "album"
)

// Link is a recognized platform URL broken into its parts.
type Link struct {
	Platform string
	Kind     LinkKind
	ID       string
}

// ParseLink detects the platform and record kind of a streaming URL.
//
// Recognized shapes:
//
//	open.spotify.com/track/{id}, open.spotify.com/album/{id}
//	(with optional /intl-xx/ locale segment)
//	deezer.com/track/{id}, deezer.com/album/{id}
//	(with optional /{locale}/ segment, e.g. deezer.com/en/track/123)
//	music.youtube.com/watch?v={id}, youtube.com/watch?v={id}, youtu.be/{id}
//	music.youtube.com/playlist?list={id} (treated as an album)
//
// Anything else, including shortened redirect links, returns
// shared.ErrUnrecognizedLink.
func ParseLink(raw string) (*Link, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty url", shared.ErrUnrecognizedLink)
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnrecognizedLink, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch {
	case host == "open.spotify.com":
		return parseSpotifyPath(u.Path)
	case host == "deezer.com" || strings.HasSuffix(host, ".deezer.com"):
		return parseDeezerPath(u.Path)
	case host == "music.youtube.com" || host == "youtube.com" || host == "m.youtube.com":
		return parseYouTubeQuery(u)
	case host == "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return &Link{Platform: models.PlatformYouTube, Kind: KindTrack, ID: id}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", shared.ErrUnrecognizedLink, raw)
}

func parseSpotifyPath(path string) (*Link, error) {
	segments := splitPath(path)

	// Locale-prefixed URLs look like /intl-fr/track/{id}.
	if len(segments) > 0 && strings.HasPrefix(segments[0], "intl-") {
		segments = segments[1:]
	}

	if len(segments) >= 2 {
		switch segments[0] {
		case "track":
			return &Link{Platform: models.PlatformSpotify, Kind: KindTrack, ID: segments[1]}, nil
		case "album":
			return &Link{Platform: models.PlatformSpotify, Kind: KindAlbum, ID: segments[1]}, nil
		}
	}

	return nil, fmt.Errorf("%w: unsupported spotify path %q", shared.ErrUnrecognizedLink, path)
}

func parseDeezerPath(path string) (*Link, error) {
	segments := splitPath(path)

	// Locale-prefixed URLs look like /en/track/{id}.
	if len(segments) >= 3 && segments[0] != "track" && segments[0] != "album" {
		segments = segments[1:]
	}

	if len(segments) >= 2 {
		switch segments[0] {
		case "track":
			return &Link{Platform: models.PlatformDeezer, Kind: KindTrack, ID: segments[1]}, nil
		case "album":
			return &Link{Platform: models.PlatformDeezer, Kind: KindAlbum, ID: segments[1]}, nil
		}
	}

	return nil, fmt.Errorf("%w: unsupported deezer path %q", shared.ErrUnrecognizedLink, path)
}

func parseYouTubeQuery(u *url.URL) (*Link, error) {
	segments := splitPath(u.Path)
	if len(segments) > 0 {
		switch segments[0] {
		case "watch":
			if id := u.Query().Get("v"); id != "" {
				return &Link{Platform: models.PlatformYouTube, Kind: KindTrack, ID: id}, nil
			}
		case "playlist":
			if id := u.Query().Get("list"); id != "" {
				return &Link{Platform: models.PlatformYouTube, Kind: KindAlbum, ID: id}, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: unsupported youtube url %q", shared.ErrUnrecognizedLink, u.String())
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
