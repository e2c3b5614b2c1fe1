// package formatter renders conversion results to various formats (plain text, Markdown, JSON)
package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/desertthunder/tunelink/internal/models"
	"github.com/desertthunder/tunelink/internal/services"
	"github.com/desertthunder/tunelink/internal/shared"
	"github.com/desertthunder/tunelink/internal/tasks"
)

// ToText converts a ConversionResult to plain text format
func ToText(result *tasks.ConversionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: nil result", shared.ErrInvalidInput)
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Source (%s): %s\n\n", sourcePlatform(result), sourceLine(result)))

	for _, target := range result.Targets {
		buf.WriteString(fmt.Sprintf("%s:\n", target.ServiceName))

		if target.Err != nil {
			buf.WriteString(fmt.Sprintf("  error: %v\n\n", target.Err))
			continue
		}

		lines := targetLines(result.Kind, target)
		if len(lines) == 0 {
			buf.WriteString("  no matches found\n")
		}
		for _, line := range lines {
			buf.WriteString(fmt.Sprintf("  %s\n", line))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ToMarkdown converts a ConversionResult to Markdown format
func ToMarkdown(result *tasks.ConversionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: nil result", shared.ErrInvalidInput)
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", sourceLine(result)))
	buf.WriteString(fmt.Sprintf("**Source**: %s\n", sourcePlatform(result)))
	buf.WriteString(fmt.Sprintf("**Kind**: %s\n\n", result.Kind))

	for _, target := range result.Targets {
		buf.WriteString(fmt.Sprintf("## %s\n\n", target.ServiceName))

		if target.Err != nil {
			buf.WriteString(fmt.Sprintf("error: %v\n\n", target.Err))
			continue
		}

		lines := targetLines(result.Kind, target)
		if len(lines) == 0 {
			buf.WriteString("no matches found\n")
		}
		for i, line := range lines {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, line))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ToJSON generates an indented JSON representation of the result
func ToJSON(result *tasks.ConversionResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: nil result", shared.ErrInvalidInput)
	}
	return shared.MarshalJSON(result, true)
}

func sourcePlatform(result *tasks.ConversionResult) string {
	if result.Source != nil {
		return result.Source.Platform
	}
	if result.SourceAlbum != nil {
		return result.SourceAlbum.Platform
	}
	return ""
}

func sourceLine(result *tasks.ConversionResult) string {
	if result.Source != nil {
		return trackLine(*result.Source)
	}
	if result.SourceAlbum != nil {
		return albumLine(*result.SourceAlbum)
	}
	return ""
}

func targetLines(kind services.LinkKind, target tasks.TargetOutcome) []string {
	var lines []string

	if kind == services.KindAlbum {
		for _, album := range target.AlbumMatches {
			lines = append(lines, albumLine(album))
		}
		for _, album := range target.AlbumLinks {
			lines = append(lines, albumLine(album))
		}
		return lines
	}

	for _, track := range target.Matches {
		lines = append(lines, trackLine(track))
	}
	for _, track := range target.Links {
		lines = append(lines, trackLine(track))
	}
	return lines
}

func trackLine(track models.Track) string {
	var b strings.Builder

	if artist := track.ArtistLine(); artist != "" {
		b.WriteString(artist)
		b.WriteString(" - ")
	}
	b.WriteString(track.Title)

	if track.Duration > 0 {
		b.WriteString(fmt.Sprintf(" [%s]", shared.FormatDuration(track.Duration)))
	}
	if track.Link {
		b.WriteString(fmt.Sprintf(" (search link, %s quality)", track.Quality))
	}
	if track.URL != "" {
		b.WriteString(fmt.Sprintf("\n    %s", track.URL))
	}

	return b.String()
}

func albumLine(album models.Album) string {
	var b strings.Builder

	if artist := album.ArtistLine(); artist != "" {
		b.WriteString(artist)
		b.WriteString(" - ")
	}
	b.WriteString(album.Title)

	if album.TrackCount > 0 {
		b.WriteString(fmt.Sprintf(" (%d tracks)", album.TrackCount))
	}
	if album.Link {
		b.WriteString(fmt.Sprintf(" (search link, %s quality)", album.Quality))
	}
	if album.URL != "" {
		b.WriteString(fmt.Sprintf("\n    %s", album.URL))
	}

	return b.String()
}
