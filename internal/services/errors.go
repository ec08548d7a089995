package services

import "errors"

// =============================================================================
// CUSTOM ERRORS FOR SERVICE LAYER
// =============================================================================
// Handlers match these with errors.Is to pick a status code, so the data layer
// can change without touching the HTTP layer. Messages returned through
// fmt.Errorf("...: %w") carry the offending id or criterion.

var (
	// ErrCategoryNotFound indicates the requested category doesn't exist
	ErrCategoryNotFound = errors.New("category not found")

	// ErrVideoNotFound indicates the requested video doesn't exist
	ErrVideoNotFound = errors.New("video not found")

	// ErrNoVideosFound indicates a listing or search produced an empty page
	ErrNoVideosFound = errors.New("no videos found")

	// ErrCategoryDoesNotExist is the domain error for an unknown categoryName on create
	ErrCategoryDoesNotExist = errors.New("category does not exist")

	// ErrDefaultCategoryMissing means category 1 was deleted; it is an internal error
	ErrDefaultCategoryMissing = errors.New("default category not found")
)
