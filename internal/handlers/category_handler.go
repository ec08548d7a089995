// =============================================================================
// FILE: internal/handlers/category_handler.go
// PURPOSE: HTTP request handling for category endpoints
// =============================================================================

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"videos-api/internal/models"
	"videos-api/internal/services"
)

// CategoryHandler handles HTTP requests for category endpoints
type CategoryHandler struct {
	categoryService services.CategoryServiceInterface
}

// NewCategoryHandler creates a new CategoryHandler instance
func NewCategoryHandler(categoryService services.CategoryServiceInterface) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// =============================================================================
// ENDPOINT: GET /categories
// =============================================================================

// ListCategories returns every category
// @Summary List all categories
// @Tags categories
// @Produce json
// @Success 200 {array} models.CategoryResponse
// @Failure 500 {object} map[string]string "Server error"
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.GetAllCategories(c.Request.Context())
	if err != nil {
		writeError(c, err, "Failed to retrieve categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// =============================================================================
// ENDPOINT: GET /categories/:id
// =============================================================================

// GetCategory returns a single category
// @Summary Get category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.CategoryResponse
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to retrieve category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// =============================================================================
// ENDPOINT: GET /categories/:id/videos
// =============================================================================

// ListCategoryVideos returns the videos of one category, possibly none
// @Summary List videos in a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {array} models.VideoResponse
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id}/videos [get]
func (h *CategoryHandler) ListCategoryVideos(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	videos, err := h.categoryService.GetVideosByCategoryID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to retrieve category videos")
		return
	}

	c.JSON(http.StatusOK, videos)
}

// =============================================================================
// ENDPOINT: POST /categories
// =============================================================================

// CreateCategory stores a new category
// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param category body models.CategoryRequest true "Category"
// @Success 201 {object} models.CategoryResponse
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req models.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Failed to create category")
		return
	}

	c.Header("Location", fmt.Sprintf("/categories/%d", category.ID))
	c.JSON(http.StatusCreated, category)
}

// =============================================================================
// ENDPOINT: PUT /categories/:id
// =============================================================================

// UpdateCategory applies the non-empty fields of the body to a category
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body models.CategoryRequest true "Fields to change"
// @Success 200 {object} models.CategoryResponse
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	var req models.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err, "Failed to update category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// =============================================================================
// ENDPOINT: DELETE /categories/:id
// =============================================================================

// DeleteCategory removes a category together with its videos
// @Summary Delete category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} models.CategoryResponse
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "category")
	if !ok {
		return
	}

	category, err := h.categoryService.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to delete category")
		return
	}

	c.JSON(http.StatusOK, category)
}
