package usecase

import (
	"context"
	"fmt"
	"strings"

	"ecommerce_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type VariantTypeUseCase interface {
	ListVariantTypes(ctx context.Context) ([]domain.VariantType, error)
	GetVariantTypeByID(ctx context.Context, id string) (*domain.VariantType, error)
	CreateVariantType(ctx context.Context, name, variantType string) (*domain.VariantType, error)
	UpdateVariantType(ctx context.Context, id, name, variantType string) (*domain.VariantType, error)
	DeleteVariantType(ctx context.Context, id string) error
}

type variantTypeUseCase struct {
	variantTypeRepo domain.VariantTypeRepository
	variantRepo     domain.VariantRepository
	productRepo     domain.ProductRepository
	log             *logrus.Logger
}

func NewVariantTypeUseCase(vtRepo domain.VariantTypeRepository, vRepo domain.VariantRepository, pRepo domain.ProductRepository, logger *logrus.Logger) VariantTypeUseCase {
	return &variantTypeUseCase{
		variantTypeRepo: vtRepo,
		variantRepo:     vRepo,
		productRepo:     pRepo,
		log:             logger,
	}
}

func (uc *variantTypeUseCase) ListVariantTypes(ctx context.Context) ([]domain.VariantType, error) {
	types, err := uc.variantTypeRepo.ListVariantTypes(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list variant types: %v", err)
		return nil, fmt.Errorf("could not retrieve variant types: %w", err)
	}
	return types, nil
}

func (uc *variantTypeUseCase) GetVariantTypeByID(ctx context.Context, id string) (*domain.VariantType, error) {
	return uc.variantTypeRepo.GetVariantTypeByID(ctx, id)
}

func (uc *variantTypeUseCase) CreateVariantType(ctx context.Context, name, variantType string) (*domain.VariantType, error) {
	name, variantType = strings.TrimSpace(name), strings.TrimSpace(variantType)
	if name == "" || variantType == "" {
		return nil, domain.NewValidationError("Name and type are required.")
	}

	created, err := uc.variantTypeRepo.CreateVariantType(ctx, &domain.VariantType{Name: name, Type: variantType})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create variant type '%s': %v", name, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Variant type '%s' created successfully with ID %s", created.Name, created.ID)
	return created, nil
}

func (uc *variantTypeUseCase) UpdateVariantType(ctx context.Context, id, name, variantType string) (*domain.VariantType, error) {
	name, variantType = strings.TrimSpace(name), strings.TrimSpace(variantType)
	if name == "" || variantType == "" {
		return nil, domain.NewValidationError("Name and type are required.")
	}
	return uc.variantTypeRepo.UpdateVariantType(ctx, &domain.VariantType{ID: id, Name: name, Type: variantType})
}

func (uc *variantTypeUseCase) DeleteVariantType(ctx context.Context, id string) error {
	variantCount, err := uc.variantRepo.CountVariantsByVariantType(ctx, id)
	if err != nil {
		return err
	}
	if variantCount > 0 {
		return domain.NewConflictError("Cannot delete variant type. Variants are referencing it.")
	}

	productCount, err := uc.productRepo.CountProductsByReference(ctx, domain.ProductRefVariantType, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return domain.NewConflictError("Cannot delete variant type. Products are referencing it.")
	}

	if err := uc.variantTypeRepo.DeleteVariantType(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete variant type ID %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Variant type deleted successfully for ID %s", id)
	return nil
}

type VariantUseCase interface {
	ListVariants(ctx context.Context) ([]domain.Variant, error)
	GetVariantByID(ctx context.Context, id string) (*domain.Variant, error)
	CreateVariant(ctx context.Context, name, variantTypeID string) (*domain.Variant, error)
	UpdateVariant(ctx context.Context, id, name, variantTypeID string) (*domain.Variant, error)
	DeleteVariant(ctx context.Context, id string) error
}

type variantUseCase struct {
	variantRepo domain.VariantRepository
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewVariantUseCase(vRepo domain.VariantRepository, pRepo domain.ProductRepository, logger *logrus.Logger) VariantUseCase {
	return &variantUseCase{
		variantRepo: vRepo,
		productRepo: pRepo,
		log:         logger,
	}
}

func (uc *variantUseCase) ListVariants(ctx context.Context) ([]domain.Variant, error) {
	variants, err := uc.variantRepo.ListVariants(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list variants: %v", err)
		return nil, fmt.Errorf("could not retrieve variants: %w", err)
	}
	return variants, nil
}

func (uc *variantUseCase) GetVariantByID(ctx context.Context, id string) (*domain.Variant, error) {
	return uc.variantRepo.GetVariantByID(ctx, id)
}

func (uc *variantUseCase) CreateVariant(ctx context.Context, name, variantTypeID string) (*domain.Variant, error) {
	name = strings.TrimSpace(name)
	if name == "" || variantTypeID == "" {
		return nil, domain.NewValidationError("Name and variant type ID are required.")
	}

	created, err := uc.variantRepo.CreateVariant(ctx, &domain.Variant{Name: name, VariantType: domain.Ref{ID: variantTypeID}})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create variant '%s': %v", name, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Variant '%s' created successfully with ID %s", created.Name, created.ID)
	return created, nil
}

func (uc *variantUseCase) UpdateVariant(ctx context.Context, id, name, variantTypeID string) (*domain.Variant, error) {
	name = strings.TrimSpace(name)
	if name == "" || variantTypeID == "" {
		return nil, domain.NewValidationError("Name and variant type ID are required.")
	}
	return uc.variantRepo.UpdateVariant(ctx, &domain.Variant{ID: id, Name: name, VariantType: domain.Ref{ID: variantTypeID}})
}

func (uc *variantUseCase) DeleteVariant(ctx context.Context, id string) error {
	productCount, err := uc.productRepo.CountProductsByReference(ctx, domain.ProductRefVariant, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return domain.NewConflictError("Cannot delete variant. Products are referencing it.")
	}

	if err := uc.variantRepo.DeleteVariant(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete variant ID %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: Variant deleted successfully for ID %s", id)
	return nil
}
