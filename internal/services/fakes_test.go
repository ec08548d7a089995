package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"videos-api/internal/models"
	"videos-api/internal/repository"
)

// memoryStore backs both fake repositories so cascades and joins behave like PostgreSQL
type memoryStore struct {
	mu         sync.Mutex
	categories map[int]models.Category
	videos     map[int]models.Video
	nextCat    int
	nextVideo  int

	// failWith makes every call return this error when set
	failWith error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		categories: map[int]models.Category{
			models.DefaultCategoryID: {ID: models.DefaultCategoryID, Title: "Free", Color: "#FFFFFF"},
		},
		videos:    map[int]models.Video{},
		nextCat:   2,
		nextVideo: 1,
	}
}

type fakeCategoryRepo struct{ s *memoryStore }

type fakeVideoRepo struct{ s *memoryStore }

var (
	_ repository.CategoryRepositoryInterface = (*fakeCategoryRepo)(nil)
	_ repository.VideoRepositoryInterface    = (*fakeVideoRepo)(nil)
)

func (r *fakeCategoryRepo) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	created := *c
	created.ID = r.s.nextCat
	r.s.nextCat++
	r.s.categories[created.ID] = created
	return &created, nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id int) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCategoryRepo) FindByTitle(_ context.Context, title string) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	for _, c := range r.s.sortedCategories() {
		if strings.EqualFold(c.Title, title) {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCategoryRepo) FindAll(_ context.Context) ([]models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	return r.s.sortedCategories(), nil
}

func (r *fakeCategoryRepo) Exists(_ context.Context, id int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return false, r.s.failWith
	}
	_, ok := r.s.categories[id]
	return ok, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if _, ok := r.s.categories[c.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	updated := *c
	return &updated, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id int) (*models.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	c, ok := r.s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.categories, id)
	for vid, v := range r.s.videos {
		if v.CategoryID == id {
			delete(r.s.videos, vid)
		}
	}
	return &c, nil
}

func (r *fakeVideoRepo) Create(_ context.Context, v *models.Video) (*models.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if _, ok := r.s.categories[v.CategoryID]; !ok {
		return nil, repository.ErrInvalidReference
	}
	created := *v
	created.ID = r.s.nextVideo
	created.Category = nil
	r.s.nextVideo++
	r.s.videos[created.ID] = created
	return r.s.joined(created), nil
}

func (r *fakeVideoRepo) GetByID(_ context.Context, id int) (*models.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	v, ok := r.s.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.s.joined(v), nil
}

func (r *fakeVideoRepo) FindAll(ctx context.Context) ([]models.Video, error) {
	return r.Search(ctx, repository.VideoFilters{})
}

func (r *fakeVideoRepo) FindByCategoryID(_ context.Context, categoryID int) ([]models.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	var out []models.Video
	for _, v := range r.s.sortedVideos() {
		if v.CategoryID == categoryID {
			out = append(out, *r.s.joined(v))
		}
	}
	return out, nil
}

func (r *fakeVideoRepo) Search(_ context.Context, f repository.VideoFilters) ([]models.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	matched := r.s.filter(f)
	if f.Offset != nil {
		if *f.Offset >= uint64(len(matched)) {
			return []models.Video{}, nil
		}
		matched = matched[*f.Offset:]
	}
	if f.Limit != nil && *f.Limit < uint64(len(matched)) {
		matched = matched[:*f.Limit]
	}
	out := make([]models.Video, 0, len(matched))
	for _, v := range matched {
		out = append(out, *r.s.joined(v))
	}
	return out, nil
}

func (r *fakeVideoRepo) Count(_ context.Context, f repository.VideoFilters) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return 0, r.s.failWith
	}
	return len(r.s.filter(f)), nil
}

func (r *fakeVideoRepo) Update(_ context.Context, v *models.Video) (*models.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	if _, ok := r.s.videos[v.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	if _, ok := r.s.categories[v.CategoryID]; !ok {
		return nil, repository.ErrInvalidReference
	}
	stored := *v
	stored.Category = nil
	r.s.videos[v.ID] = stored
	return r.s.joined(stored), nil
}

func (r *fakeVideoRepo) Delete(_ context.Context, id int) (*models.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failWith != nil {
		return nil, r.s.failWith
	}
	v, ok := r.s.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.videos, id)
	return r.s.joined(v), nil
}

func (s *memoryStore) joined(v models.Video) *models.Video {
	c := s.categories[v.CategoryID]
	v.Category = &c
	return &v
}

func (s *memoryStore) filter(f repository.VideoFilters) []models.Video {
	var out []models.Video
	needle := strings.ToUpper(f.Search)
	for _, v := range s.sortedVideos() {
		if strings.Contains(strings.ToUpper(v.Title), needle) {
			out = append(out, v)
		}
	}
	return out
}

func (s *memoryStore) sortedCategories() []models.Category {
	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memoryStore) sortedVideos() []models.Video {
	out := make([]models.Video, 0, len(s.videos))
	for _, v := range s.videos {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var errStoreDown = errors.New("connection refused")

func newServices(pageSize int) (*memoryStore, *CategoryService, *VideoService) {
	store := newMemoryStore()
	categoryRepo := &fakeCategoryRepo{s: store}
	videoRepo := &fakeVideoRepo{s: store}
	return store,
		NewCategoryService(categoryRepo, videoRepo),
		NewVideoService(videoRepo, categoryRepo, pageSize)
}
