// =============================================================================
// FILE: internal/repository/video_repository.go
// PURPOSE: Database operations for videos
// =============================================================================
//
// Every read joins the owning category so the service layer can map a video
// without a second round trip. Listing and search queries are assembled with
// squirrel because the WHERE clause depends on the optional search text.
// =============================================================================

package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"videos-api/internal/models"
)

// VideoRepositoryInterface defines the contract for video data operations
type VideoRepositoryInterface interface {
	Create(ctx context.Context, video *models.Video) (*models.Video, error)
	GetByID(ctx context.Context, id int) (*models.Video, error)
	FindAll(ctx context.Context) ([]models.Video, error)
	FindByCategoryID(ctx context.Context, categoryID int) ([]models.Video, error)
	Search(ctx context.Context, filters VideoFilters) ([]models.Video, error)
	Count(ctx context.Context, filters VideoFilters) (int, error)
	Update(ctx context.Context, video *models.Video) (*models.Video, error)
	Delete(ctx context.Context, id int) (*models.Video, error)
}

// VideoFilters holds optional filters for listing videos
type VideoFilters struct {
	// Search matches the title case-insensitively as a substring; empty matches all
	Search string
	Limit  *uint64
	Offset *uint64
}

// videoRow is a video joined with its category, one column per field
type videoRow struct {
	ID            int    `db:"id"`
	Title         string `db:"title"`
	Description   string `db:"description"`
	URL           string `db:"url"`
	CategoryID    int    `db:"category_id"`
	CategoryTitle string `db:"category_title"`
	CategoryColor string `db:"category_color"`
}

func (row videoRow) toModel() models.Video {
	return models.Video{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		URL:         row.URL,
		CategoryID:  row.CategoryID,
		Category: &models.Category{
			ID:    row.CategoryID,
			Title: row.CategoryTitle,
			Color: row.CategoryColor,
		},
	}
}

var videoColumns = []string{
	"v.id", "v.title", "v.description", "v.url", "v.category_id",
	"c.title AS category_title", "c.color AS category_color",
}

// VideoRepository implements VideoRepositoryInterface
type VideoRepository struct {
	db DBTX
}

// NewVideoRepository creates a new VideoRepository instance
func NewVideoRepository(db DBTX) *VideoRepository {
	return &VideoRepository{db: db}
}

// selectVideos is the base SELECT shared by every read
func selectVideos() sq.SelectBuilder {
	return psql.Select(videoColumns...).
		From("videos v").
		Join("categories c ON c.id = v.category_id")
}

// applyFilters adds the search predicate, if any
func applyFilters(b sq.SelectBuilder, filters VideoFilters) sq.SelectBuilder {
	if filters.Search != "" {
		// strpos avoids treating % and _ in user input as LIKE wildcards
		b = b.Where(sq.Expr("strpos(upper(v.title), upper(?)) > 0", filters.Search))
	}
	return b
}

// buildSearchQuery renders the page query for the given filters
func buildSearchQuery(filters VideoFilters) (string, []any, error) {
	b := applyFilters(selectVideos(), filters).OrderBy("v.id ASC")
	if filters.Limit != nil {
		b = b.Limit(*filters.Limit)
	}
	if filters.Offset != nil {
		b = b.Offset(*filters.Offset)
	}
	return b.ToSql()
}

// buildCountQuery renders the COUNT(*) over the same filtered set
func buildCountQuery(filters VideoFilters) (string, []any, error) {
	b := psql.Select("COUNT(*)").From("videos v")
	return applyFilters(b, filters).ToSql()
}

// Create inserts a video. A category_id that no longer exists yields ErrInvalidReference.
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) (*models.Video, error) {
	query := `
		INSERT INTO videos (title, description, url, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	created := *video
	err := r.db.QueryRow(ctx, query, video.Title, video.Description, video.URL, video.CategoryID).Scan(&created.ID)
	if err != nil {
		if errors.Is(translateError(err), ErrInvalidReference) {
			return nil, ErrInvalidReference
		}
		return nil, fmt.Errorf("failed to insert video: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a video together with its category
func (r *VideoRepository) GetByID(ctx context.Context, id int) (*models.Video, error) {
	query, args, err := selectVideos().Where(sq.Eq{"v.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build video query: %w", err)
	}

	return r.getOne(ctx, query, args...)
}

// FindAll retrieves every video
func (r *VideoRepository) FindAll(ctx context.Context) ([]models.Video, error) {
	return r.Search(ctx, VideoFilters{})
}

// FindByCategoryID retrieves the videos of one category
func (r *VideoRepository) FindByCategoryID(ctx context.Context, categoryID int) ([]models.Video, error) {
	query, args, err := selectVideos().
		Where(sq.Eq{"v.category_id": categoryID}).
		OrderBy("v.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build videos by category query: %w", err)
	}

	return r.collect(ctx, query, args...)
}

// Search retrieves one page of videos matching the filters
func (r *VideoRepository) Search(ctx context.Context, filters VideoFilters) ([]models.Video, error) {
	query, args, err := buildSearchQuery(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build video search query: %w", err)
	}

	return r.collect(ctx, query, args...)
}

// Count returns how many videos match the filters, ignoring Limit and Offset
func (r *VideoRepository) Count(ctx context.Context, filters VideoFilters) (int, error) {
	query, args, err := buildCountQuery(filters)
	if err != nil {
		return 0, fmt.Errorf("failed to build video count query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return total, nil
}

// Update overwrites the mutable columns of a video and returns it joined with its category
func (r *VideoRepository) Update(ctx context.Context, video *models.Video) (*models.Video, error) {
	query := `
		WITH updated AS (
			UPDATE videos
			SET title = $2, description = $3, url = $4, category_id = $5
			WHERE id = $1
			RETURNING id, title, description, url, category_id
		)
		SELECT u.id, u.title, u.description, u.url, u.category_id,
			c.title AS category_title, c.color AS category_color
		FROM updated u
		JOIN categories c ON c.id = u.category_id
	`

	return r.getOne(ctx, query, video.ID, video.Title, video.Description, video.URL, video.CategoryID)
}

// Delete removes a video and returns it with the category it belonged to
func (r *VideoRepository) Delete(ctx context.Context, id int) (*models.Video, error) {
	query := `
		WITH deleted AS (
			DELETE FROM videos
			WHERE id = $1
			RETURNING id, title, description, url, category_id
		)
		SELECT d.id, d.title, d.description, d.url, d.category_id,
			c.title AS category_title, c.color AS category_color
		FROM deleted d
		JOIN categories c ON c.id = d.category_id
	`

	return r.getOne(ctx, query, id)
}

func (r *VideoRepository) collect(ctx context.Context, query string, args ...any) ([]models.Video, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}

	// pgx.CollectRows handles iteration, scanning, and closing rows automatically
	videoRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[videoRow])
	if err != nil {
		return nil, fmt.Errorf("failed to collect video rows: %w", err)
	}

	videos := make([]models.Video, 0, len(videoRows))
	for _, row := range videoRows {
		videos = append(videos, row.toModel())
	}
	return videos, nil
}

func (r *VideoRepository) getOne(ctx context.Context, query string, args ...any) (*models.Video, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapVideoError("failed to query video", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[videoRow])
	if err != nil {
		return nil, wrapVideoError("failed to collect video row", err)
	}

	video := row.toModel()
	return &video, nil
}

// wrapVideoError returns the repository sentinel for known driver errors,
// otherwise err wrapped with msg
func wrapVideoError(msg string, err error) error {
	switch translated := translateError(err); translated {
	case ErrNotFound, ErrInvalidReference:
		return translated
	}
	return fmt.Errorf("%s: %w", msg, err)
}
