package usecase

import (
	"context"
	"fmt"
	"strings"

	"ecommerce_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type SubCategoryUseCase interface {
	ListSubCategories(ctx context.Context) ([]domain.SubCategory, error)
	GetSubCategoryByID(ctx context.Context, id string) (*domain.SubCategory, error)
	CreateSubCategory(ctx context.Context, name, categoryID string) (*domain.SubCategory, error)
	UpdateSubCategory(ctx context.Context, id, name, categoryID string) (*domain.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id string) error
}

type subCategoryUseCase struct {
	subCategoryRepo domain.SubCategoryRepository
	brandRepo       domain.BrandRepository
	productRepo     domain.ProductRepository
	log             *logrus.Logger
}

func NewSubCategoryUseCase(sRepo domain.SubCategoryRepository, bRepo domain.BrandRepository, pRepo domain.ProductRepository, logger *logrus.Logger) SubCategoryUseCase {
	return &subCategoryUseCase{
		subCategoryRepo: sRepo,
		brandRepo:       bRepo,
		productRepo:     pRepo,
		log:             logger,
	}
}

func (uc *subCategoryUseCase) ListSubCategories(ctx context.Context) ([]domain.SubCategory, error) {
	subs, err := uc.subCategoryRepo.ListSubCategories(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list subcategories: %v", err)
		return nil, fmt.Errorf("could not retrieve subcategories: %w", err)
	}
	return subs, nil
}

func (uc *subCategoryUseCase) GetSubCategoryByID(ctx context.Context, id string) (*domain.SubCategory, error) {
	return uc.subCategoryRepo.GetSubCategoryByID(ctx, id)
}

func (uc *subCategoryUseCase) CreateSubCategory(ctx context.Context, name, categoryID string) (*domain.SubCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" || categoryID == "" {
		return nil, domain.NewValidationError("Name and category ID are required.")
	}

	created, err := uc.subCategoryRepo.CreateSubCategory(ctx, &domain.SubCategory{Name: name, Category: domain.Ref{ID: categoryID}})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create subcategory '%s': %v", name, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Subcategory '%s' created successfully with ID %s", created.Name, created.ID)
	return created, nil
}

func (uc *subCategoryUseCase) UpdateSubCategory(ctx context.Context, id, name, categoryID string) (*domain.SubCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" || categoryID == "" {
		return nil, domain.NewValidationError("Name and category ID are required.")
	}

	updated, err := uc.subCategoryRepo.UpdateSubCategory(ctx, &domain.SubCategory{ID: id, Name: name, Category: domain.Ref{ID: categoryID}})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update subcategory ID %s: %v", id, err)
		return nil, err
	}
	return updated, nil
}

func (uc *subCategoryUseCase) DeleteSubCategory(ctx context.Context, id string) error {
	brandCount, err := uc.brandRepo.CountBrandsBySubCategory(ctx, id)
	if err != nil {
		return err
	}
	if brandCount > 0 {
		return domain.NewConflictError("Cannot delete subcategory. Brands are referencing it.")
	}

	productCount, err := uc.productRepo.CountProductsByReference(ctx, domain.ProductRefSubCategory, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return domain.NewConflictError("Cannot delete subcategory. Products are referencing it.")
	}

	if err := uc.subCategoryRepo.DeleteSubCategory(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete subcategory ID %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Subcategory deleted successfully for ID %s", id)
	return nil
}

type BrandUseCase interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrandByID(ctx context.Context, id string) (*domain.Brand, error)
	CreateBrand(ctx context.Context, name, subCategoryID string) (*domain.Brand, error)
	UpdateBrand(ctx context.Context, id, name, subCategoryID string) (*domain.Brand, error)
	DeleteBrand(ctx context.Context, id string) error
}

type brandUseCase struct {
	brandRepo   domain.BrandRepository
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewBrandUseCase(bRepo domain.BrandRepository, pRepo domain.ProductRepository, logger *logrus.Logger) BrandUseCase {
	return &brandUseCase{
		brandRepo:   bRepo,
		productRepo: pRepo,
		log:         logger,
	}
}

func (uc *brandUseCase) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	brands, err := uc.brandRepo.ListBrands(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list brands: %v", err)
		return nil, fmt.Errorf("could not retrieve brands: %w", err)
	}
	return brands, nil
}

func (uc *brandUseCase) GetBrandByID(ctx context.Context, id string) (*domain.Brand, error) {
	return uc.brandRepo.GetBrandByID(ctx, id)
}

func (uc *brandUseCase) CreateBrand(ctx context.Context, name, subCategoryID string) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" || subCategoryID == "" {
		return nil, domain.NewValidationError("Name and subcategory ID are required.")
	}

	created, err := uc.brandRepo.CreateBrand(ctx, &domain.Brand{Name: name, SubCategory: domain.Ref{ID: subCategoryID}})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create brand '%s': %v", name, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Brand '%s' created successfully with ID %s", created.Name, created.ID)
	return created, nil
}

func (uc *brandUseCase) UpdateBrand(ctx context.Context, id, name, subCategoryID string) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" || subCategoryID == "" {
		return nil, domain.NewValidationError("Name and subcategory ID are required.")
	}
	return uc.brandRepo.UpdateBrand(ctx, &domain.Brand{ID: id, Name: name, SubCategory: domain.Ref{ID: subCategoryID}})
}

func (uc *brandUseCase) DeleteBrand(ctx context.Context, id string) error {
	productCount, err := uc.productRepo.CountProductsByReference(ctx, domain.ProductRefBrand, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return domain.NewConflictError("Cannot delete brand. Products are referencing it.")
	}

	if err := uc.brandRepo.DeleteBrand(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete brand ID %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Brand deleted successfully for ID %s", id)
	return nil
}
