package models

import "errors"

// DefaultCategoryID is the "Free" category seeded by the first migration.
// Videos created without a category name are assigned to it.
const DefaultCategoryID = 1

// ErrCategoryNotLoaded is returned when a Video is mapped before its Category was fetched
var ErrCategoryNotLoaded = errors.New("video category not loaded")

// =============================================================================
// DATABASE MODELS - These match PostgreSQL table structures
// =============================================================================

// Category represents a row in the "categories" table
// STRUCT TAGS: `db` maps columns for pgx, `validate` is checked before every write
type Category struct {
	ID int `db:"id" json:"id"`

	Title string `db:"title" json:"title" validate:"required,notblank"`

	// Color is a hex color code such as "#FFF" or "#aabbcc"
	Color string `db:"color" json:"color" validate:"required,color_hex"`
}

// Video represents a row in the "videos" table
type Video struct {
	ID int `db:"id" json:"id"`

	Title string `db:"title" json:"title" validate:"required,notblank"`

	Description string `db:"description" json:"description" validate:"required,notblank"`

	// URL must be an absolute web URL no longer than browsers accept
	URL string `db:"url" json:"url" validate:"required,max=2083,web_url"`

	// CategoryID is the foreign key to categories(id), ON DELETE CASCADE
	CategoryID int `db:"category_id" json:"-"`

	// Category is the resolved owner of the video
	// Repositories always populate it; it is nil only for videos built in memory
	Category *Category `db:"-" json:"-" validate:"-"`
}

// =============================================================================
// API RESPONSE DTOs - These are what we send back to clients
// =============================================================================

// CategoryResponse is the public shape of a category
type CategoryResponse struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// VideoResponse is the public shape of a video, always embedding its category
type VideoResponse struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	URL         string           `json:"url"`
	Category    CategoryResponse `json:"category"`
}

// PageResponse is the envelope for paginated listings
type PageResponse[T any] struct {
	CurrentPage  int  `json:"currentPage"`
	HasMorePages bool `json:"hasMorePages"`
	Items        []T  `json:"items"`
}

// =============================================================================
// API REQUEST DTOs - These are what clients send to us
// =============================================================================

// CategoryRequest is the body of POST and PUT /categories
// On PUT, empty fields keep their stored value
type CategoryRequest struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

// VideoRequest is the body of POST and PUT /videos
type VideoRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	CategoryName string `json:"categoryName"`
}

// VideoSearchRequest holds the query string of GET /videos
// Page is a pointer so an absent parameter can default to the first page
type VideoSearchRequest struct {
	Search string `form:"search"`
	Page   *int   `form:"page"`
}

// =============================================================================
// HELPER METHODS - Convert between models and DTOs
// =============================================================================

// ToResponse converts a Category model to CategoryResponse DTO
func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:    c.ID,
		Title: c.Title,
		Color: c.Color,
	}
}

// ToResponse converts a Video model to VideoResponse DTO.
// The category has to be loaded; a nil Category yields ErrCategoryNotLoaded.
func (v *Video) ToResponse() (VideoResponse, error) {
	if v.Category == nil {
		return VideoResponse{}, ErrCategoryNotLoaded
	}

	return VideoResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		URL:         v.URL,
		Category:    v.Category.ToResponse(),
	}, nil
}

// ToVideoResponses maps a slice of videos, failing on the first video without its category
func ToVideoResponses(videos []Video) ([]VideoResponse, error) {
	responses := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		vr, err := videos[i].ToResponse()
		if err != nil {
			return nil, err
		}
		responses = append(responses, vr)
	}
	return responses, nil
}

// NewPageResponse builds a page envelope, never serializing items as null
func NewPageResponse[T any](currentPage int, hasMorePages bool, items []T) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{
		CurrentPage:  currentPage,
		HasMorePages: hasMorePages,
		Items:        items,
	}
}

// Merge overwrites fields that are non-empty in the request
func (c *Category) Merge(req CategoryRequest) {
	if req.Title != "" {
		c.Title = req.Title
	}
	if req.Color != "" {
		c.Color = req.Color
	}
}

// Merge overwrites title, description and url when non-empty in the request.
// The category is resolved separately by the service.
func (v *Video) Merge(req VideoRequest) {
	if req.Title != "" {
		v.Title = req.Title
	}
	if req.Description != "" {
		v.Description = req.Description
	}
	if req.URL != "" {
		v.URL = req.URL
	}
}

// SetCategory points the video at a category, keeping the foreign key in sync
func (v *Video) SetCategory(c *Category) {
	v.Category = c
	v.CategoryID = c.ID
}
