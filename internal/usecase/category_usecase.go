package usecase

import (
	"context"
	"fmt"
	"strings"

	"ecommerce_service/internal/domain"

	"github.com/sirupsen/logrus"
)

// CategoryInput is the form of a category create or update request.
// ImageURL lets an update keep an image that is already stored.
type CategoryInput struct {
	Name     string
	Image    *domain.ImageUpload
	ImageURL string
}

type CategoryUseCase interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type categoryUseCase struct {
	categoryRepo    domain.CategoryRepository
	subCategoryRepo domain.SubCategoryRepository
	productRepo     domain.ProductRepository
	images          domain.ImageStore
	log             *logrus.Logger
}

func NewCategoryUseCase(
	cRepo domain.CategoryRepository,
	sRepo domain.SubCategoryRepository,
	pRepo domain.ProductRepository,
	images domain.ImageStore,
	logger *logrus.Logger,
) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo:    cRepo,
		subCategoryRepo: sRepo,
		productRepo:     pRepo,
		images:          images,
		log:             logger,
	}
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	uc.log.Info("Use Case: Attempting to list all categories")

	categories, err := uc.categoryRepo.ListCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}

	uc.log.Infof("Use Case: Retrieved %d categories", len(categories))
	return categories, nil
}

func (uc *categoryUseCase) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	category, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get category ID %s: %v", id, err)
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		uc.log.Warn("Use Case: Attempted to create category with empty name")
		return nil, domain.NewValidationError("Name is required.")
	}

	category := &domain.Category{Name: name, Image: domain.NoImageURL}
	if input.Image != nil {
		stored, err := uc.images.Upload(ctx, domain.FolderCategories, input.Image)
		if err != nil {
			uc.log.Errorf("Use Case: Image upload failed for category '%s': %v", name, err)
			return nil, err
		}
		category.Image = stored.URL
		category.ImagePublicID = stored.PublicID
	}

	uc.log.Infof("Use Case: Attempting to create category with name '%s'", name)
	created, err := uc.categoryRepo.CreateCategory(ctx, category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", name, err)
		releaseImages(ctx, uc.images, uc.log, category.ImagePublicID)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %s", created.Name, created.ID)
	return created, nil
}

// UpdateCategory replaces name and image. The previous blob is left in place.
func (uc *categoryUseCase) UpdateCategory(ctx context.Context, id string, input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		uc.log.Warnf("Use Case: Attempted update for category ID %s with empty name", id)
		return nil, domain.NewValidationError("Name and image are required.")
	}

	existing, err := uc.categoryRepo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := domain.StoredImage{URL: existing.Image, PublicID: existing.ImagePublicID}
	if !hasImage(input.ImageURL) && input.Image == nil && !hasImage(current.URL) {
		uc.log.Warnf("Use Case: Attempted update for category ID %s without an image", id)
		return nil, domain.NewValidationError("Name and image are required.")
	}

	image, err := resolveImage(ctx, uc.images, domain.FolderCategories, input.Image, input.ImageURL, current)
	if err != nil {
		uc.log.Errorf("Use Case: Image upload failed for category ID %s: %v", id, err)
		return nil, err
	}

	existing.Name = name
	existing.Image = image.URL
	existing.ImagePublicID = image.PublicID

	uc.log.Infof("Use Case: Attempting to update category ID %s", id)
	updated, err := uc.categoryRepo.UpdateCategory(ctx, existing)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update category ID %s: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category updated successfully for ID %s", updated.ID)
	return updated, nil
}

// DeleteCategory refuses while subcategories or products reference the
// category. The foreign keys reject the delete if a reference appears after the check.
func (uc *categoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	subCount, err := uc.subCategoryRepo.CountSubCategoriesByCategory(ctx, id)
	if err != nil {
		return err
	}
	if subCount > 0 {
		uc.log.Warnf("Use Case: Category ID %s is referenced by %d subcategories", id, subCount)
		return domain.NewConflictError("Cannot delete category. Subcategories are referencing it.")
	}

	productCount, err := uc.productRepo.CountProductsByReference(ctx, domain.ProductRefCategory, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		uc.log.Warnf("Use Case: Category ID %s is referenced by %d products", id, productCount)
		return domain.NewConflictError("Cannot delete category. Products are referencing it.")
	}

	uc.log.Infof("Use Case: Attempting to delete category ID %s", id)
	if err := uc.categoryRepo.DeleteCategory(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %s: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Category deleted successfully for ID %s", id)
	return nil
}
