package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"videos-api/internal/models"
)

// CategoryRepositoryInterface defines the contract for category data operations
type CategoryRepositoryInterface interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	GetByID(ctx context.Context, id int) (*models.Category, error)
	FindByTitle(ctx context.Context, title string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	Exists(ctx context.Context, id int) (bool, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id int) (*models.Category, error)
}

// CategoryRepository implements CategoryRepositoryInterface
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new CategoryRepository instance
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category and fills in the generated ID
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (title, color)
		VALUES ($1, $2)
		RETURNING id
	`

	created := *category
	if err := r.db.QueryRow(ctx, query, category.Title, category.Color).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &created, nil
}

// GetByID retrieves a single category by its ID
// Returns ErrNotFound if the category doesn't exist
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	query := `
		SELECT id, title, color
		FROM categories
		WHERE id = $1
	`

	return r.getOne(ctx, query, id)
}

// FindByTitle looks a category up by title, ignoring case.
// When several titles collide the oldest category wins.
func (r *CategoryRepository) FindByTitle(ctx context.Context, title string) (*models.Category, error) {
	query := `
		SELECT id, title, color
		FROM categories
		WHERE upper(title) = upper($1)
		ORDER BY id ASC
		LIMIT 1
	`

	return r.getOne(ctx, query, title)
}

// FindAll retrieves all categories
func (r *CategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT id, title, color
		FROM categories
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	// pgx.CollectRows handles iteration, scanning, and closing rows automatically
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to collect category rows: %w", err)
	}

	return categories, nil
}

// Exists reports whether a category with the given ID is stored
func (r *CategoryRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category %d: %w", id, err)
	}
	return exists, nil
}

// Update overwrites title and color of an existing category
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	query := `
		UPDATE categories
		SET title = $2, color = $3
		WHERE id = $1
		RETURNING id, title, color
	`

	return r.getOne(ctx, query, category.ID, category.Title, category.Color)
}

// Delete removes a category and returns it as it was stored.
// Videos in the category are removed by the ON DELETE CASCADE foreign key.
func (r *CategoryRepository) Delete(ctx context.Context, id int) (*models.Category, error) {
	query := `
		DELETE FROM categories
		WHERE id = $1
		RETURNING id, title, color
	`

	return r.getOne(ctx, query, id)
}

func (r *CategoryRepository) getOne(ctx context.Context, query string, args ...any) (*models.Category, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	category, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[models.Category])
	if err != nil {
		if errors.Is(translateError(err), ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to collect category row: %w", err)
	}

	return category, nil
}
