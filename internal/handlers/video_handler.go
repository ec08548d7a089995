// =============================================================================
// FILE: internal/handlers/video_handler.go
// PURPOSE: HTTP request handling for video endpoints
// =============================================================================

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"videos-api/internal/models"
	"videos-api/internal/services"
)

// VideoHandler handles HTTP requests for video endpoints
type VideoHandler struct {
	videoService services.VideoServiceInterface
}

// NewVideoHandler creates a new VideoHandler instance
func NewVideoHandler(videoService services.VideoServiceInterface) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// =============================================================================
// ENDPOINT: GET /videos?search=&page=
// =============================================================================

// ListVideos returns one page of videos, optionally filtered by title
// @Summary Search videos
// @Tags videos
// @Produce json
// @Param search query string false "Case-insensitive title substring"
// @Param page query int false "Page number, starting at 1"
// @Success 200 {object} models.PageResponse[models.VideoResponse]
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 404 {object} map[string]string "No videos found"
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	var req models.VideoSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}
	// ?page= counts as absent, like an empty search
	if c.Query("page") == "" {
		req.Page = nil
	}

	page, err := h.videoService.SearchVideos(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Failed to retrieve videos")
		return
	}

	c.JSON(http.StatusOK, page)
}

// =============================================================================
// ENDPOINT: GET /videos/:id
// =============================================================================

// GetVideo returns a single video with its category
// @Summary Get video
// @Tags videos
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} models.VideoResponse
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Video not found"
// @Router /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, ok := parseID(c, "video")
	if !ok {
		return
	}

	video, err := h.videoService.GetVideoByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to retrieve video")
		return
	}

	c.JSON(http.StatusOK, video)
}

// =============================================================================
// ENDPOINT: POST /videos
// =============================================================================

// CreateVideo stores a new video.
// Without categoryName the video lands in the default category.
// @Summary Create video
// @Tags videos
// @Accept json
// @Produce json
// @Param video body models.VideoRequest true "Video"
// @Success 201 {object} models.VideoResponse
// @Failure 400 {object} map[string]interface{} "Validation failed or unknown category"
// @Router /videos [post]
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req models.VideoRequest
	if !bindJSON(c, &req) {
		return
	}

	video, err := h.videoService.CreateVideo(c.Request.Context(), req)
	if err != nil {
		writeError(c, err, "Failed to create video")
		return
	}

	c.Header("Location", fmt.Sprintf("/videos/%d", video.ID))
	c.JSON(http.StatusCreated, video)
}

// =============================================================================
// ENDPOINT: PUT /videos/:id
// =============================================================================

// UpdateVideo applies the non-empty fields of the body to a video
// @Summary Update video
// @Tags videos
// @Accept json
// @Produce json
// @Param id path int true "Video ID"
// @Param video body models.VideoRequest true "Fields to change"
// @Success 200 {object} models.VideoResponse
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]string "Video not found"
// @Router /videos/{id} [put]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, ok := parseID(c, "video")
	if !ok {
		return
	}

	var req models.VideoRequest
	if !bindJSON(c, &req) {
		return
	}

	video, err := h.videoService.UpdateVideo(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err, "Failed to update video")
		return
	}

	c.JSON(http.StatusOK, video)
}

// =============================================================================
// ENDPOINT: DELETE /videos/:id
// =============================================================================

// DeleteVideo removes a video and returns it as it was
// @Summary Delete video
// @Tags videos
// @Produce json
// @Param id path int true "Video ID"
// @Success 200 {object} models.VideoResponse
// @Failure 404 {object} map[string]string "Video not found"
// @Router /videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, ok := parseID(c, "video")
	if !ok {
		return
	}

	video, err := h.videoService.DeleteVideo(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to delete video")
		return
	}

	c.JSON(http.StatusOK, video)
}
