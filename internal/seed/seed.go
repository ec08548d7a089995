// Package seed loads categories and videos from a YAML fixture and stores
// them through the services, so fixtures obey the same validation as the API.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"videos-api/internal/models"
	"videos-api/internal/services"
)

// Fixture is the document shape of a seed file
type Fixture struct {
	Categories []CategoryFixture `yaml:"categories"`
	Videos     []VideoFixture    `yaml:"videos"`
}

type CategoryFixture struct {
	Title string `yaml:"title"`
	Color string `yaml:"color"`
}

type VideoFixture struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	URL          string `yaml:"url"`
	CategoryName string `yaml:"categoryName"`
}

// Result counts what a run stored
type Result struct {
	Categories int
	Videos     int
}

// Parse decodes a fixture, rejecting unknown keys
func Parse(r io.Reader) (*Fixture, error) {
	var fixture Fixture

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fixture); err != nil {
		if errors.Is(err, io.EOF) {
			return &fixture, nil
		}
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &fixture, nil
}

// LoadFile opens and parses the fixture at path
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Seeder applies fixtures through the services
type Seeder struct {
	categories services.CategoryServiceInterface
	videos     services.VideoServiceInterface
}

// NewSeeder creates a new Seeder instance
func NewSeeder(categories services.CategoryServiceInterface, videos services.VideoServiceInterface) *Seeder {
	return &Seeder{categories: categories, videos: videos}
}

// Apply creates the fixture's categories first, then its videos.
// Categories whose title already exists (case-insensitively) are skipped,
// so a fixture can be applied more than once without duplicating them.
// The first failure stops the run; the result counts what was stored before it.
func (s *Seeder) Apply(ctx context.Context, fixture *Fixture) (Result, error) {
	var result Result
	logger := zerolog.Ctx(ctx)

	existing, err := s.categories.GetAllCategories(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list categories: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, c := range existing {
		known[normalize(c.Title)] = true
	}

	for i, c := range fixture.Categories {
		if known[normalize(c.Title)] {
			logger.Debug().Str("title", c.Title).Msg("category already present, skipping")
			continue
		}

		if _, err := s.categories.CreateCategory(ctx, models.CategoryRequest{Title: c.Title, Color: c.Color}); err != nil {
			return result, fmt.Errorf("category #%d (%s): %w", i+1, c.Title, err)
		}
		known[normalize(c.Title)] = true
		result.Categories++
	}

	for i, v := range fixture.Videos {
		req := models.VideoRequest{
			Title:        v.Title,
			Description:  v.Description,
			URL:          v.URL,
			CategoryName: v.CategoryName,
		}
		if _, err := s.videos.CreateVideo(ctx, req); err != nil {
			return result, fmt.Errorf("video #%d (%s): %w", i+1, v.Title, err)
		}
		result.Videos++
	}

	logger.Info().
		Int("categories", result.Categories).
		Int("videos", result.Videos).
		Msg("seed applied")

	return result, nil
}

// normalize matches the store's upper(title) comparison
func normalize(title string) string {
	return strings.ToUpper(title)
}
