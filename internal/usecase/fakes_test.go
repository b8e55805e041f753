package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"ecommerce_service/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type memCategoryRepo struct {
	items map[string]domain.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{items: map[string]domain.Category{}}
}

func (r *memCategoryRepo) CreateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	c.ID = uuid.NewString()
	r.items[c.ID] = *c
	out := *c
	return &out, nil
}

func (r *memCategoryRepo) GetCategoryByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Category not found.")
	}
	return &c, nil
}

func (r *memCategoryRepo) UpdateCategory(_ context.Context, c *domain.Category) (*domain.Category, error) {
	if _, ok := r.items[c.ID]; !ok {
		return nil, domain.NewNotFoundError("Category not found.")
	}
	r.items[c.ID] = *c
	out := *c
	return &out, nil
}

func (r *memCategoryRepo) DeleteCategory(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("Category not found.")
	}
	delete(r.items, id)
	return nil
}

func (r *memCategoryRepo) ListCategories(context.Context) ([]domain.Category, error) {
	out := []domain.Category{}
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

type memSubCategoryRepo struct {
	items map[string]domain.SubCategory
}

func newMemSubCategoryRepo() *memSubCategoryRepo {
	return &memSubCategoryRepo{items: map[string]domain.SubCategory{}}
}

func (r *memSubCategoryRepo) CreateSubCategory(_ context.Context, s *domain.SubCategory) (*domain.SubCategory, error) {
	s.ID = uuid.NewString()
	r.items[s.ID] = *s
	out := *s
	return &out, nil
}

func (r *memSubCategoryRepo) GetSubCategoryByID(_ context.Context, id string) (*domain.SubCategory, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Subcategory not found.")
	}
	return &s, nil
}

func (r *memSubCategoryRepo) UpdateSubCategory(_ context.Context, s *domain.SubCategory) (*domain.SubCategory, error) {
	if _, ok := r.items[s.ID]; !ok {
		return nil, domain.NewNotFoundError("Subcategory not found.")
	}
	r.items[s.ID] = *s
	return s, nil
}

func (r *memSubCategoryRepo) DeleteSubCategory(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("Subcategory not found.")
	}
	delete(r.items, id)
	return nil
}

func (r *memSubCategoryRepo) ListSubCategories(context.Context) ([]domain.SubCategory, error) {
	out := []domain.SubCategory{}
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, nil
}

func (r *memSubCategoryRepo) CountSubCategoriesByCategory(_ context.Context, categoryID string) (int, error) {
	n := 0
	for _, s := range r.items {
		if s.Category.ID == categoryID {
			n++
		}
	}
	return n, nil
}

type memBrandRepo struct {
	count int
}

func (r *memBrandRepo) CreateBrand(_ context.Context, b *domain.Brand) (*domain.Brand, error) {
	b.ID = uuid.NewString()
	return b, nil
}

func (r *memBrandRepo) GetBrandByID(context.Context, string) (*domain.Brand, error) {
	return nil, domain.NewNotFoundError("Brand not found.")
}

func (r *memBrandRepo) UpdateBrand(_ context.Context, b *domain.Brand) (*domain.Brand, error) {
	return b, nil
}

func (r *memBrandRepo) DeleteBrand(context.Context, string) error { return nil }

func (r *memBrandRepo) ListBrands(context.Context) ([]domain.Brand, error) {
	return []domain.Brand{}, nil
}

func (r *memBrandRepo) CountBrandsBySubCategory(context.Context, string) (int, error) {
	return r.count, nil
}

type memProductRepo struct {
	items     map[string]domain.Product
	updateErr error
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{items: map[string]domain.Product{}}
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = append([]domain.ProductImage{}, p.Images...)
	return p
}

func (r *memProductRepo) CreateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	p.ID = uuid.NewString()
	r.items[p.ID] = cloneProduct(*p)
	out := cloneProduct(*p)
	return &out, nil
}

func (r *memProductRepo) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Product not found.")
	}
	out := cloneProduct(p)
	return &out, nil
}

func (r *memProductRepo) UpdateProduct(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if _, ok := r.items[p.ID]; !ok {
		return nil, domain.NewNotFoundError("Product not found.")
	}
	r.items[p.ID] = cloneProduct(*p)
	out := cloneProduct(*p)
	return &out, nil
}

func (r *memProductRepo) DeleteProduct(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("Product not found.")
	}
	delete(r.items, id)
	return nil
}

func (r *memProductRepo) ListProducts(context.Context) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range r.items {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *memProductRepo) CountProductsByReference(_ context.Context, ref domain.ProductReference, id string) (int, error) {
	n := 0
	for _, p := range r.items {
		var target *domain.Ref
		switch ref {
		case domain.ProductRefCategory:
			target = &p.Category
		case domain.ProductRefSubCategory:
			target = &p.SubCategory
		case domain.ProductRefBrand:
			target = p.Brand
		case domain.ProductRefVariantType:
			target = p.VariantType
		case domain.ProductRefVariant:
			target = p.Variant
		default:
			return 0, fmt.Errorf("unknown product reference %q", ref)
		}
		if target != nil && target.ID == id {
			n++
		}
	}
	return n, nil
}

type memUserRepo struct {
	mu    sync.Mutex
	items map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{items: map[string]domain.User{}}
}

func (r *memUserRepo) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Name == u.Name {
			return nil, domain.NewConflictError("Name is already taken.")
		}
	}
	u.ID = uuid.NewString()
	r.items[u.ID] = *u
	out := *u
	return &out, nil
}

func (r *memUserRepo) GetUserByName(_ context.Context, name string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Name == name {
			return &u, nil
		}
	}
	return nil, domain.NewNotFoundError("User not found.")
}

func (r *memUserRepo) GetUserByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("User not found.")
	}
	return &u, nil
}

func (r *memUserRepo) UpdateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[u.ID] = *u
	out := *u
	return &out, nil
}

func (r *memUserRepo) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("User not found.")
	}
	delete(r.items, id)
	return nil
}

func (r *memUserRepo) ListUsers(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.User{}
	for _, u := range r.items {
		out = append(out, u)
	}
	return out, nil
}

var errUploadFailed = errors.New("upload failed")

// fakeImageStore hands out sequential public ids and records deletes.
type fakeImageStore struct {
	uploads  int
	failOn   int
	deleted  []string
	uploaded []domain.ImageFolder
}

func (s *fakeImageStore) Upload(_ context.Context, folder domain.ImageFolder, file *domain.ImageUpload) (*domain.StoredImage, error) {
	s.uploads++
	if s.failOn > 0 && s.uploads == s.failOn {
		return nil, errUploadFailed
	}
	s.uploaded = append(s.uploaded, folder)
	publicID := fmt.Sprintf("%s/blob-%d", folder, s.uploads)
	return &domain.StoredImage{
		URL:      "https://images.example.com/" + publicID + "/" + file.Filename,
		PublicID: publicID,
	}, nil
}

func (s *fakeImageStore) Delete(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func jpegUpload(name string) *domain.ImageUpload {
	return &domain.ImageUpload{Filename: name, ContentType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF}}
}
