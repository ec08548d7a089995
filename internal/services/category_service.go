// =============================================================================
// FILE: internal/services/category_service.go
// PURPOSE: Business logic for categories
// =============================================================================
//
// Reads: list, get by id, list the videos of a category.
// Writes: create, partial update, delete (cascading to videos in the database).
// =============================================================================

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"videos-api/internal/models"
	"videos-api/internal/repository"
)

// CategoryServiceInterface defines the contract for category operations
type CategoryServiceInterface interface {
	GetAllCategories(ctx context.Context) ([]models.CategoryResponse, error)
	GetCategoryByID(ctx context.Context, id int) (*models.CategoryResponse, error)
	GetVideosByCategoryID(ctx context.Context, id int) ([]models.VideoResponse, error)
	CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id int, req models.CategoryRequest) (*models.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int) (*models.CategoryResponse, error)
}

// CategoryService implements CategoryServiceInterface
type CategoryService struct {
	categoryRepo repository.CategoryRepositoryInterface
	videoRepo    repository.VideoRepositoryInterface
}

// NewCategoryService creates a new CategoryService instance
func NewCategoryService(categoryRepo repository.CategoryRepositoryInterface, videoRepo repository.VideoRepositoryInterface) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		videoRepo:    videoRepo,
	}
}

// GetAllCategories retrieves every category
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	// Convert to response DTOs
	responses := make([]models.CategoryResponse, 0, len(categories))
	for _, cat := range categories {
		responses = append(responses, cat.ToResponse())
	}

	return responses, nil
}

// GetCategoryByID retrieves a single category
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int) (*models.CategoryResponse, error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	response := category.ToResponse()
	return &response, nil
}

// GetVideosByCategoryID lists the videos of a category.
// An existing category without videos yields an empty slice, not an error.
func (s *CategoryService) GetVideosByCategoryID(ctx context.Context, id int) ([]models.VideoResponse, error) {
	exists, err := s.categoryRepo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("category with id %d: %w", id, ErrCategoryNotFound)
	}

	videos, err := s.videoRepo.FindByCategoryID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos for category: %w", err)
	}

	responses, err := models.ToVideoResponses(videos)
	if err != nil {
		return nil, fmt.Errorf("failed to map videos for category %d: %w", id, err)
	}
	return responses, nil
}

// CreateCategory validates and stores a new category
func (s *CategoryService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.CategoryResponse, error) {
	category := &models.Category{
		Title: req.Title,
		Color: req.Color,
	}

	if err := models.Validate(category); err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("category_id", created.ID).Msg("category created")

	response := created.ToResponse()
	return &response, nil
}

// UpdateCategory applies a partial update: empty request fields keep the stored value
func (s *CategoryService) UpdateCategory(ctx context.Context, id int, req models.CategoryRequest) (*models.CategoryResponse, error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Merge(req)

	// Validate the merged record, not only the request
	if err := models.Validate(category); err != nil {
		return nil, err
	}

	updated, err := s.categoryRepo.Update(ctx, category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("category with id %d: %w", id, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	response := updated.ToResponse()
	return &response, nil
}

// DeleteCategory removes a category; the database cascades the delete to its videos
func (s *CategoryService) DeleteCategory(ctx context.Context, id int) (*models.CategoryResponse, error) {
	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("category with id %d: %w", id, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("category_id", deleted.ID).Msg("category deleted with its videos")

	response := deleted.ToResponse()
	return &response, nil
}

// getCategory converts repository not-found into the service error
func (s *CategoryService) getCategory(ctx context.Context, id int) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("category with id %d: %w", id, ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}
