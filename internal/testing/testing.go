// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/desertthunder/tunelink/internal/models"
)

// MockService is a configurable test double for [services.Service]
type MockService struct {
	ServiceID   string
	ServiceName string
	CanSearch   bool

	Tracks        map[string]models.Track
	Albums        map[string]models.Album
	SearchResults []models.Track
	AlbumResults  []models.Album
	Err           error
}

func (m *MockService) Name() string {
	if m.ServiceName == "" {
		return "mock"
	}
	return m.ServiceName
}

func (m *MockService) ID() string {
	if m.ServiceID == "" {
		return "mock"
	}
	return m.ServiceID
}

func (m *MockService) Searchable() bool { return m.CanSearch }

func (m *MockService) LookupTrack(ctx context.Context, id string) (*models.Track, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if track, ok := m.Tracks[id]; ok {
		return &track, nil
	}
	return nil, errors.New("track not found")
}

func (m *MockService) LookupAlbum(ctx context.Context, id string) (*models.Album, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if album, ok := m.Albums[id]; ok {
		return &album, nil
	}
	return nil, errors.New("album not found")
}

func (m *MockService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	return m.SearchResults, m.Err
}

func (m *MockService) SearchAlbums(ctx context.Context, query string, limit int) ([]models.Album, error) {
	return m.AlbumResults, m.Err
}

func (m *MockService) TrackSearchLinks(src models.Track) []models.Track {
	return []models.Track{{Title: src.Title, Platform: m.ID(), Link: true, Quality: models.QualityHigh}}
}

func (m *MockService) AlbumSearchLinks(src models.Album) []models.Album {
	return []models.Album{{Title: src.Title, Platform: m.ID(), Link: true, Quality: models.QualityHigh}}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
