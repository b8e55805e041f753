package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"ecommerce_service/internal/domain"
	"ecommerce_service/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type categoryStore struct {
	items map[string]domain.Category
}

func (s *categoryStore) CreateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	c.ID = uuid.NewString()
	s.items[c.ID] = *c
	return c, nil
}

func (s *categoryStore) GetCategoryByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := s.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Category not found.")
	}
	return &c, nil
}

func (s *categoryStore) UpdateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	s.items[c.ID] = *c
	return c, nil
}

func (s *categoryStore) DeleteCategory(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return domain.NewNotFoundError("Category not found.")
	}
	delete(s.items, id)
	return nil
}

func (s *categoryStore) ListCategories(context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range s.items {
		out = append(out, c)
	}
	return out, nil
}

// dependentCounter reports a fixed number of dependents for every guard query.
type dependentCounter struct {
	domain.SubCategoryRepository
	domain.ProductRepository
	subCategories int
	products      int
}

func (d *dependentCounter) CountSubCategoriesByCategory(context.Context, string) (int, error) {
	return d.subCategories, nil
}

func (d *dependentCounter) CountProductsByReference(context.Context, domain.ProductReference, string) (int, error) {
	return d.products, nil
}

type noopImageStore struct{}

func (noopImageStore) Upload(_ context.Context, folder domain.ImageFolder, file *domain.ImageUpload) (*domain.StoredImage, error) {
	return &domain.StoredImage{URL: "https://images.example.com/" + string(folder) + "/" + file.Filename, PublicID: string(folder) + "/x"}, nil
}

func (noopImageStore) Delete(context.Context, string) error { return nil }

func TestCategoryEndToEnd(t *testing.T) {
	logger := newTestLogger()
	store := &categoryStore{items: map[string]domain.Category{}}
	deps := &dependentCounter{}
	uc := usecase.NewCategoryUseCase(store, deps, deps, noopImageStore{}, logger)

	router := newTestRouter()
	NewCategoryHandler(uc, NewUploadPolicy(0), logger).RegisterRoutes(router)

	w, body := serve(t, router, jsonRequest(t, http.MethodPost, "/categories", map[string]string{"name": "Shoes"}))
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, body.Success)

	var created domain.Category
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "Shoes", created.Name)
	assert.Equal(t, "no_url", created.Image)

	w, body = serve(t, router, jsonRequest(t, http.MethodDelete, "/categories/"+created.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, "Category deleted successfully.", body.Message)

	w, body = serve(t, router, jsonRequest(t, http.MethodGet, "/categories/"+created.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Category not found.", body.Message)
}

func TestCategoryDeleteRejectedWhileReferenced(t *testing.T) {
	logger := newTestLogger()
	store := &categoryStore{items: map[string]domain.Category{}}
	deps := &dependentCounter{subCategories: 2}
	uc := usecase.NewCategoryUseCase(store, deps, deps, noopImageStore{}, logger)

	router := newTestRouter()
	NewCategoryHandler(uc, NewUploadPolicy(0), logger).RegisterRoutes(router)

	created, err := uc.CreateCategory(context.Background(), usecase.CategoryInput{Name: "Shoes"})
	require.NoError(t, err)

	w, body := serve(t, router, jsonRequest(t, http.MethodDelete, "/categories/"+created.ID, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete category. Subcategories are referencing it.", body.Message)

	w, _ = serve(t, router, jsonRequest(t, http.MethodGet, "/categories/"+created.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryCreateWithImage(t *testing.T) {
	logger := newTestLogger()
	store := &categoryStore{items: map[string]domain.Category{}}
	deps := &dependentCounter{}
	uc := usecase.NewCategoryUseCase(store, deps, deps, noopImageStore{}, logger)

	router := newTestRouter()
	NewCategoryHandler(uc, NewUploadPolicy(0), logger).RegisterRoutes(router)

	req := multipartRequest(t, http.MethodPost, "/categories", map[string]string{"name": "Bags"},
		formFile{field: "img", filename: "bags.png", data: pngBytes})
	w, body := serve(t, router, req)
	require.Equal(t, http.StatusOK, w.Code)

	var created domain.Category
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "https://images.example.com/categories/bags.png", created.Image)
}

func TestCategoryUploadRejected(t *testing.T) {
	router := newTestRouter()
	uc := &mockCategoryUseCase{}
	NewCategoryHandler(uc, NewUploadPolicy(1<<20), newTestLogger()).RegisterRoutes(router)

	tests := []struct {
		name    string
		file    formFile
		message string
	}{
		{
			name:    "wrong extension",
			file:    formFile{field: "img", filename: "doc.gif", data: pngBytes},
			message: "Only .jpg, .jpeg and .png images are allowed.",
		},
		{
			name:    "content is not an image",
			file:    formFile{field: "img", filename: "fake.png", data: []byte("plain text")},
			message: "Only .jpg, .jpeg and .png images are allowed.",
		},
		{
			name:    "too large",
			file:    formFile{field: "img", filename: "big.png", data: append(append([]byte{}, pngBytes...), make([]byte, 1<<20)...)},
			message: "File size is too large. Maximum filesize is 1MB per image.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := multipartRequest(t, http.MethodPost, "/categories", map[string]string{"name": "Bags"}, tt.file)
			w, body := serve(t, router, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.message, body.Message)
		})
	}
	uc.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

type mockCategoryUseCase struct {
	mock.Mock
}

func (m *mockCategoryUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]domain.Category)
	return categories, args.Error(1)
}

func (m *mockCategoryUseCase) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *mockCategoryUseCase) CreateCategory(ctx context.Context, input usecase.CategoryInput) (*domain.Category, error) {
	args := m.Called(ctx, input)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *mockCategoryUseCase) UpdateCategory(ctx context.Context, id string, input usecase.CategoryInput) (*domain.Category, error) {
	args := m.Called(ctx, id, input)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *mockCategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestCategoryInfrastructureErrorIsHidden(t *testing.T) {
	router := newTestRouter()
	uc := &mockCategoryUseCase{}
	uc.On("ListCategories", mock.Anything).Return(nil, errors.New("pq: connection refused"))
	NewCategoryHandler(uc, NewUploadPolicy(0), newTestLogger()).RegisterRoutes(router)

	w, body := serve(t, router, jsonRequest(t, http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error.", body.Message)
	uc.AssertExpectations(t)
}

func TestCategoryInvalidID(t *testing.T) {
	router := newTestRouter()
	uc := &mockCategoryUseCase{}
	NewCategoryHandler(uc, NewUploadPolicy(0), newTestLogger()).RegisterRoutes(router)

	w, body := serve(t, router, jsonRequest(t, http.MethodGet, "/categories/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid category ID format", body.Message)
	uc.AssertNotCalled(t, "GetCategoryByID", mock.Anything, mock.Anything)
}

func TestCategoryUpdatePassesImageReference(t *testing.T) {
	router := newTestRouter()
	uc := &mockCategoryUseCase{}
	id := uuid.NewString()
	uc.On("UpdateCategory", mock.Anything, id, usecase.CategoryInput{Name: "Boots", ImageURL: "https://cdn.example.com/b.png"}).
		Return(&domain.Category{ID: id, Name: "Boots", Image: "https://cdn.example.com/b.png"}, nil)
	NewCategoryHandler(uc, NewUploadPolicy(0), newTestLogger()).RegisterRoutes(router)

	req := multipartRequest(t, http.MethodPut, "/categories/"+id, map[string]string{"name": "Boots", "image": "https://cdn.example.com/b.png"})
	w, body := serve(t, router, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Category updated successfully.", body.Message)
	uc.AssertExpectations(t)
}
