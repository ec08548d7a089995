// =============================================================================
// FILE: internal/services/video_service.go
// PURPOSE: Business logic for videos, including search and pagination
// =============================================================================

package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"videos-api/internal/models"
	"videos-api/internal/repository"
)

// DefaultPageSize is the number of videos per page when none is configured
const DefaultPageSize = 5

// VideoServiceInterface defines the contract for video operations
type VideoServiceInterface interface {
	GetAllVideos(ctx context.Context) ([]models.VideoResponse, error)
	GetVideoByID(ctx context.Context, id int) (*models.VideoResponse, error)
	SearchVideos(ctx context.Context, req models.VideoSearchRequest) (*models.PageResponse[models.VideoResponse], error)
	CreateVideo(ctx context.Context, req models.VideoRequest) (*models.VideoResponse, error)
	UpdateVideo(ctx context.Context, id int, req models.VideoRequest) (*models.VideoResponse, error)
	DeleteVideo(ctx context.Context, id int) (*models.VideoResponse, error)
}

// VideoService implements VideoServiceInterface
type VideoService struct {
	videoRepo    repository.VideoRepositoryInterface
	categoryRepo repository.CategoryRepositoryInterface
	pageSize     int
}

// NewVideoService creates a new VideoService instance.
// A pageSize below 1 falls back to DefaultPageSize.
func NewVideoService(videoRepo repository.VideoRepositoryInterface, categoryRepo repository.CategoryRepositoryInterface, pageSize int) *VideoService {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &VideoService{
		videoRepo:    videoRepo,
		categoryRepo: categoryRepo,
		pageSize:     pageSize,
	}
}

// GetAllVideos retrieves every video with its category
func (s *VideoService) GetAllVideos(ctx context.Context) ([]models.VideoResponse, error) {
	videos, err := s.videoRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}

	responses, err := models.ToVideoResponses(videos)
	if err != nil {
		return nil, fmt.Errorf("failed to map videos: %w", err)
	}
	return responses, nil
}

// GetVideoByID retrieves a single video
func (s *VideoService) GetVideoByID(ctx context.Context, id int) (*models.VideoResponse, error) {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	return toVideoResponse(video)
}

// SearchVideos returns one page of videos whose title contains req.Search
func (s *VideoService) SearchVideos(ctx context.Context, req models.VideoSearchRequest) (*models.PageResponse[models.VideoResponse], error) {
	page := 1
	if req.Page != nil {
		page = *req.Page
	}
	if page < 1 {
		return nil, models.NewValidationError("page", "must be 1 or greater")
	}

	// ==========================================================================
	// PAGINATION
	// ==========================================================================
	// skip and take apply to the filtered set; the total is counted with the
	// same filter so hasMorePages reflects the search, not the whole table.
	// A page whose offset does not fit an OFFSET lies past any stored row
	if pageOutOfRange(page, s.pageSize) {
		return nil, noVideosFound(req.Search, page)
	}

	skip, take := pageBounds(page, s.pageSize)
	filters := repository.VideoFilters{
		Search: req.Search,
		Limit:  &take,
		Offset: &skip,
	}

	total, err := s.videoRepo.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}

	videos, err := s.videoRepo.Search(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	if len(videos) == 0 {
		return nil, noVideosFound(req.Search, page)
	}

	items, err := models.ToVideoResponses(videos)
	if err != nil {
		return nil, fmt.Errorf("failed to map videos: %w", err)
	}

	response := models.NewPageResponse(page, hasMorePages(skip, len(items), total), items)
	return &response, nil
}

// CreateVideo resolves the category, validates and stores a new video
func (s *VideoService) CreateVideo(ctx context.Context, req models.VideoRequest) (*models.VideoResponse, error) {
	video := &models.Video{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
	}

	category, err := s.resolveCategoryForCreate(ctx, req.CategoryName)
	if err != nil {
		return nil, err
	}
	video.SetCategory(category)

	// Validation runs after category resolution
	if err := models.Validate(video); err != nil {
		return nil, err
	}

	created, err := s.videoRepo.Create(ctx, video)
	if err != nil {
		// The category was deleted between lookup and insert
		if errors.Is(err, repository.ErrInvalidReference) {
			return nil, fmt.Errorf("category %q: %w", category.Title, ErrCategoryDoesNotExist)
		}
		return nil, fmt.Errorf("failed to create video: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Int("video_id", created.ID).
		Int("category_id", created.CategoryID).
		Msg("video created")

	return toVideoResponse(created)
}

// UpdateVideo applies a partial update.
// A categoryName that does not resolve leaves the current category in place
// without an error, unlike CreateVideo which rejects it.
func (s *VideoService) UpdateVideo(ctx context.Context, id int, req models.VideoRequest) (*models.VideoResponse, error) {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	video.Merge(req)

	if req.CategoryName != "" {
		category, err := s.categoryRepo.FindByTitle(ctx, req.CategoryName)
		switch {
		case err == nil:
			video.SetCategory(category)
		case errors.Is(err, repository.ErrNotFound):
			zerolog.Ctx(ctx).Debug().
				Int("video_id", id).
				Str("category_name", req.CategoryName).
				Msg("category name did not resolve, keeping current category")
		default:
			return nil, fmt.Errorf("failed to look up category: %w", err)
		}
	}

	if err := models.Validate(video); err != nil {
		return nil, err
	}

	updated, err := s.videoRepo.Update(ctx, video)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("video with id %d: %w", id, ErrVideoNotFound)
		case errors.Is(err, repository.ErrInvalidReference):
			return nil, fmt.Errorf("category with id %d: %w", video.CategoryID, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	return toVideoResponse(updated)
}

// DeleteVideo removes a video and returns it with the category it had
func (s *VideoService) DeleteVideo(ctx context.Context, id int) (*models.VideoResponse, error) {
	deleted, err := s.videoRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("video with id %d: %w", id, ErrVideoNotFound)
		}
		return nil, fmt.Errorf("failed to delete video: %w", err)
	}

	return toVideoResponse(deleted)
}

// =============================================================================
// PRIVATE HELPER METHODS
// =============================================================================

// resolveCategoryForCreate picks the category by name, or the default one
func (s *VideoService) resolveCategoryForCreate(ctx context.Context, name string) (*models.Category, error) {
	if name != "" {
		category, err := s.categoryRepo.FindByTitle(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("category %q: %w", name, ErrCategoryDoesNotExist)
			}
			return nil, fmt.Errorf("failed to look up category: %w", err)
		}
		return category, nil
	}

	category, err := s.categoryRepo.GetByID(ctx, models.DefaultCategoryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDefaultCategoryMissing
		}
		return nil, fmt.Errorf("failed to get default category: %w", err)
	}
	return category, nil
}

func (s *VideoService) getVideo(ctx context.Context, id int) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("video with id %d: %w", id, ErrVideoNotFound)
		}
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

func toVideoResponse(video *models.Video) (*models.VideoResponse, error) {
	response, err := video.ToResponse()
	if err != nil {
		return nil, fmt.Errorf("failed to map video %d: %w", video.ID, err)
	}
	return &response, nil
}

func noVideosFound(search string, page int) error {
	if search != "" {
		return fmt.Errorf("search %q page %d: %w", search, page, ErrNoVideosFound)
	}
	return fmt.Errorf("page %d: %w", page, ErrNoVideosFound)
}

// pageOutOfRange reports whether (page-1)*pageSize exceeds math.MaxInt64
func pageOutOfRange(page, pageSize int) bool {
	return uint64(page-1) > uint64(math.MaxInt64)/uint64(pageSize)
}

// pageBounds returns skip and take for a 1-based page.
// Callers check pageOutOfRange first.
func pageBounds(page, pageSize int) (skip, take uint64) {
	return uint64(page-1) * uint64(pageSize), uint64(pageSize)
}

// hasMorePages reports whether rows remain after this page
func hasMorePages(skip uint64, returned, total int) bool {
	return skip+uint64(returned) < uint64(total)
}
