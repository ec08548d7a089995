package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videos-api/internal/models"
	"videos-api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// =============================================================================
// FAKE SERVICES
// =============================================================================

type fakeCategoryService struct {
	categories []models.CategoryResponse
	videos     []models.VideoResponse
	err        error

	lastID  int
	lastReq models.CategoryRequest
}

func (f *fakeCategoryService) GetAllCategories(ctx context.Context) ([]models.CategoryResponse, error) {
	return f.categories, f.err
}

func (f *fakeCategoryService) GetCategoryByID(ctx context.Context, id int) (*models.CategoryResponse, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &f.categories[0], nil
}

func (f *fakeCategoryService) GetVideosByCategoryID(ctx context.Context, id int) ([]models.VideoResponse, error) {
	f.lastID = id
	return f.videos, f.err
}

func (f *fakeCategoryService) CreateCategory(ctx context.Context, req models.CategoryRequest) (*models.CategoryResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.CategoryResponse{ID: 42, Title: req.Title, Color: req.Color}, nil
}

func (f *fakeCategoryService) UpdateCategory(ctx context.Context, id int, req models.CategoryRequest) (*models.CategoryResponse, error) {
	f.lastID, f.lastReq = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.CategoryResponse{ID: id, Title: req.Title, Color: req.Color}, nil
}

func (f *fakeCategoryService) DeleteCategory(ctx context.Context, id int) (*models.CategoryResponse, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &f.categories[0], nil
}

type fakeVideoService struct {
	page  *models.PageResponse[models.VideoResponse]
	video models.VideoResponse
	err   error

	lastID     int
	lastReq    models.VideoRequest
	lastSearch models.VideoSearchRequest
}

func (f *fakeVideoService) GetAllVideos(ctx context.Context) ([]models.VideoResponse, error) {
	return []models.VideoResponse{f.video}, f.err
}

func (f *fakeVideoService) GetVideoByID(ctx context.Context, id int) (*models.VideoResponse, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &f.video, nil
}

func (f *fakeVideoService) SearchVideos(ctx context.Context, req models.VideoSearchRequest) (*models.PageResponse[models.VideoResponse], error) {
	f.lastSearch = req
	return f.page, f.err
}

func (f *fakeVideoService) CreateVideo(ctx context.Context, req models.VideoRequest) (*models.VideoResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &f.video, nil
}

func (f *fakeVideoService) UpdateVideo(ctx context.Context, id int, req models.VideoRequest) (*models.VideoResponse, error) {
	f.lastID, f.lastReq = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &f.video, nil
}

func (f *fakeVideoService) DeleteVideo(ctx context.Context, id int) (*models.VideoResponse, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &f.video, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

// =============================================================================
// HELPERS
// =============================================================================

var (
	free  = models.CategoryResponse{ID: 1, Title: "Free", Color: "#FFFFFF"}
	clip  = models.VideoResponse{ID: 3, Title: "Go", Description: "talk", URL: "https://go.dev", Category: free}
	bogus = errors.New("connection reset")
)

func newTestRouter(cs services.CategoryServiceInterface, vs services.VideoServiceInterface) *gin.Engine {
	router := gin.New()

	ch := NewCategoryHandler(cs)
	router.GET("/categories", ch.ListCategories)
	router.GET("/categories/:id", ch.GetCategory)
	router.GET("/categories/:id/videos", ch.ListCategoryVideos)
	router.POST("/categories", ch.CreateCategory)
	router.PUT("/categories/:id", ch.UpdateCategory)
	router.DELETE("/categories/:id", ch.DeleteCategory)

	vh := NewVideoHandler(vs)
	router.GET("/videos", vh.ListVideos)
	router.GET("/videos/:id", vh.GetVideo)
	router.POST("/videos", vh.CreateVideo)
	router.PUT("/videos/:id", vh.UpdateVideo)
	router.DELETE("/videos/:id", vh.DeleteVideo)

	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// =============================================================================
// CATEGORY ENDPOINTS
// =============================================================================

func TestListCategories(t *testing.T) {
	cs := &fakeCategoryService{categories: []models.CategoryResponse{free}}
	w := do(newTestRouter(cs, &fakeVideoService{}), http.MethodGet, "/categories", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"title":"Free","color":"#FFFFFF"}]`, w.Body.String())
}

func TestGetCategory_InvalidID(t *testing.T) {
	cs := &fakeCategoryService{}
	w := do(newTestRouter(cs, &fakeVideoService{}), http.MethodGet, "/categories/abc", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, cs.lastID)
}

func TestGetCategory_NotFound(t *testing.T) {
	cs := &fakeCategoryService{err: fmt.Errorf("category with id %d: %w", 9, services.ErrCategoryNotFound)}
	w := do(newTestRouter(cs, &fakeVideoService{}), http.MethodGet, "/categories/9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "category with id 9: category not found", decode(t, w)["error"])
	assert.Equal(t, 9, cs.lastID)
}

func TestListCategoryVideos_EmptyIsOK(t *testing.T) {
	cs := &fakeCategoryService{videos: []models.VideoResponse{}}
	w := do(newTestRouter(cs, &fakeVideoService{}), http.MethodGet, "/categories/2/videos", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreateCategory_Created(t *testing.T) {
	cs := &fakeCategoryService{}
	w := do(newTestRouter(cs, &fakeVideoService{}), http.MethodPost, "/categories", `{"title":"Music","color":"#abc"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/categories/42", w.Header().Get("Location"))
	assert.Equal(t, models.CategoryRequest{Title: "Music", Color: "#abc"}, cs.lastReq)
}

func TestCreateCategory_ValidationFailed(t *testing.T) {
	cs := &fakeCategoryService{err: models.NewValidationError("color", "must be a valid hex code")}
	w := do(newTestRouter(cs, &fakeVideoService{}), http.MethodPost, "/categories", `{"title":"Music","color":"notahex"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, []any{map[string]any{"field": "color", "message": "must be a valid hex code"}}, body["details"])
}

func TestCreateCategory_MalformedJSON(t *testing.T) {
	cs := &fakeCategoryService{}
	w := do(newTestRouter(cs, &fakeVideoService{}), http.MethodPost, "/categories", `{"title":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, cs.lastReq.Title)
}

func TestUpdateCategory_PassesIDAndBody(t *testing.T) {
	cs := &fakeCategoryService{}
	w := do(newTestRouter(cs, &fakeVideoService{}), http.MethodPut, "/categories/5", `{"title":"Renamed"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, cs.lastID)
	assert.Equal(t, "Renamed", cs.lastReq.Title)
}

func TestDeleteCategory_InternalErrorIsGeneric(t *testing.T) {
	cs := &fakeCategoryService{err: bogus}
	w := do(newTestRouter(cs, &fakeVideoService{}), http.MethodDelete, "/categories/1", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to delete category", decode(t, w)["error"])
	assert.NotContains(t, w.Body.String(), "connection reset")
}

// =============================================================================
// VIDEO ENDPOINTS
// =============================================================================

func TestListVideos_BindsQuery(t *testing.T) {
	page := models.NewPageResponse(2, false, []models.VideoResponse{clip})
	vs := &fakeVideoService{page: &page}

	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodGet, "/videos?search=go&page=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go", vs.lastSearch.Search)
	require.NotNil(t, vs.lastSearch.Page)
	assert.Equal(t, 2, *vs.lastSearch.Page)

	body := decode(t, w)
	assert.Equal(t, float64(2), body["currentPage"])
	assert.Equal(t, false, body["hasMorePages"])
	assert.Len(t, body["items"], 1)
}

func TestListVideos_NoPageParam(t *testing.T) {
	page := models.NewPageResponse(1, true, []models.VideoResponse{clip})
	vs := &fakeVideoService{page: &page}

	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodGet, "/videos", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, vs.lastSearch.Page)
}

func TestListVideos_EmptyPageParamDefaults(t *testing.T) {
	page := models.NewPageResponse(1, false, []models.VideoResponse{clip})
	vs := &fakeVideoService{page: &page}

	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodGet, "/videos?search=&page=", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, vs.lastSearch.Page)
	assert.Empty(t, vs.lastSearch.Search)
}

func TestListVideos_NonNumericPage(t *testing.T) {
	vs := &fakeVideoService{}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodGet, "/videos?page=two", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListVideos_EmptyPageIsNotFound(t *testing.T) {
	vs := &fakeVideoService{err: fmt.Errorf("page %d: %w", 3, services.ErrNoVideosFound)}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodGet, "/videos?page=3", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListVideos_PageBelowOne(t *testing.T) {
	vs := &fakeVideoService{err: models.NewValidationError("page", "must be 1 or greater")}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodGet, "/videos?page=0", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVideo(t *testing.T) {
	vs := &fakeVideoService{video: clip}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodGet, "/videos/3", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"id": 3, "title": "Go", "description": "talk", "url": "https://go.dev",
		"category": {"id": 1, "title": "Free", "color": "#FFFFFF"}
	}`, w.Body.String())
}

func TestGetVideo_NotFound(t *testing.T) {
	vs := &fakeVideoService{err: fmt.Errorf("video with id %d: %w", 99, services.ErrVideoNotFound)}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodGet, "/videos/99", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateVideo_Created(t *testing.T) {
	vs := &fakeVideoService{video: clip}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodPost, "/videos",
		`{"title":"Go","description":"talk","url":"https://go.dev","categoryName":"free"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/videos/3", w.Header().Get("Location"))
	assert.Equal(t, "free", vs.lastReq.CategoryName)
}

func TestCreateVideo_UnknownCategory(t *testing.T) {
	vs := &fakeVideoService{err: fmt.Errorf("category %q: %w", "doesnotexist", services.ErrCategoryDoesNotExist)}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodPost, "/videos",
		`{"title":"Go","description":"talk","url":"https://go.dev","categoryName":"doesnotexist"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "category does not exist", decode(t, w)["error"])
}

func TestCreateVideo_DefaultCategoryMissingIsInternal(t *testing.T) {
	vs := &fakeVideoService{err: services.ErrDefaultCategoryMissing}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodPost, "/videos",
		`{"title":"Go","description":"talk","url":"https://go.dev"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "default category")
}

func TestUpdateVideo_InvalidID(t *testing.T) {
	vs := &fakeVideoService{}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodPut, "/videos/x", `{"title":"New"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, vs.lastReq.Title)
}

func TestDeleteVideo(t *testing.T) {
	vs := &fakeVideoService{video: clip}
	w := do(newTestRouter(&fakeCategoryService{}, vs), http.MethodDelete, "/videos/3", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, vs.lastID)
}

// =============================================================================
// HEALTH
// =============================================================================

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"database up", nil, http.StatusOK},
		{"database down", bogus, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/health", NewHealthHandler(fakePinger{err: tt.err}).Health)

			w := do(router, http.MethodGet, "/health", "")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
