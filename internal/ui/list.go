package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/services"
	"github.com/desertthunder/tunelink/internal/shared"
	"github.com/desertthunder/tunelink/internal/tasks"
)

var (
	_ list.Item = targetItem{}
	_ list.Item = matchItem{}
)

// targetItem wraps [tasks.TargetOutcome] to implement [list.Item].
type targetItem struct {
	outcome tasks.TargetOutcome
	kind    services.LinkKind
}

func (i targetItem) FilterValue() string { return i.outcome.ServiceName }
func (i targetItem) Title() string       { return i.outcome.ServiceName }
func (i targetItem) Description() string {
	if i.outcome.Err != nil {
		return fmt.Sprintf("error: %v", i.outcome.Err)
	}

	matches := len(i.outcome.Matches) + len(i.outcome.AlbumMatches)
	links := len(i.outcome.Links) + len(i.outcome.AlbumLinks)
	switch {
	case matches > 0:
		return fmt.Sprintf("%d matches", matches)
	case links > 0:
		return fmt.Sprintf("%d search links", links)
	default:
		return "no matches found"
	}
}

// matchItems flattens a target's matches and links into list items.
func (i targetItem) matchItems() []list.Item {
	var items []list.Item

	if i.kind == services.KindAlbum {
		for _, album := range i.outcome.AlbumMatches {
			items = append(items, albumMatch(album))
		}
		for _, album := range i.outcome.AlbumLinks {
			items = append(items, albumMatch(album))
		}
		return items
	}

	for _, track := range i.outcome.Matches {
		items = append(items, trackMatch(track))
	}
	for _, track := range i.outcome.Links {
		items = append(items, trackMatch(track))
	}
	return items
}

// matchItem is a single match or search link row.
type matchItem struct {
	title string
	desc  string
	url   string
}

func (i matchItem) FilterValue() string { return i.title }
func (i matchItem) Title() string       { return i.title }
func (i matchItem) Description() string { return i.desc }

func trackMatch(track models.Track) list.Item {
	desc := track.ArtistLine()
	if track.Duration > 0 {
		desc = fmt.Sprintf("%s • %s", desc, shared.FormatDuration(track.Duration))
	}
	if track.Link {
		desc = fmt.Sprintf("%s • search link (%s)", desc, track.Quality)
	}
	return matchItem{title: track.Title, desc: desc, url: track.URL}
}

func albumMatch(album models.Album) list.Item {
	desc := album.ArtistLine()
	if album.TrackCount > 0 {
		desc = fmt.Sprintf("%s • %d tracks", desc, album.TrackCount)
	}
	if album.Link {
		desc = fmt.Sprintf("%s • search link (%s)", desc, album.Quality)
	}
	return matchItem{title: album.Title, desc: desc, url: album.URL}
}
