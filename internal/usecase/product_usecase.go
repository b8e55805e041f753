package usecase

import (
	"context"
	"fmt"
	"strings"

	"ecommerce_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type productUseCase struct {
	productRepo domain.ProductRepository
	images      domain.ImageStore
	log         *logrus.Logger
}

func NewProductUseCase(repo domain.ProductRepository, images domain.ImageStore, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: repo,
		images:      images,
		log:         logger,
	}
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := uc.productRepo.ListProducts(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d products", len(products))
	return products, nil
}

func (uc *productUseCase) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %s: %v", id, err)
		return nil, err
	}
	return product, nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	name, _ := input.Name.Get()
	categoryID, _ := input.CategoryID.Get()
	subCategoryID, _ := input.SubCategoryID.Get()
	if strings.TrimSpace(name) == "" || !input.Quantity.Set || !input.Price.Set || categoryID == "" || subCategoryID == "" {
		uc.log.Warn("Use Case: Attempted to create product with missing required fields")
		return nil, domain.NewValidationError("Required fields are missing.")
	}

	product := &domain.Product{
		Name:        strings.TrimSpace(name),
		Description: input.Description.OrElse(""),
		Category:    domain.Ref{ID: categoryID},
		SubCategory: domain.Ref{ID: subCategoryID},
		Images:      []domain.ProductImage{},
	}
	if err := applyProductFields(product, input); err != nil {
		return nil, err
	}
	if err := validateImageSlots(input.Images); err != nil {
		return nil, err
	}

	uploaded, _, err := uc.uploadSlots(ctx, product, input.Images)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: Attempting to create product '%s' with %d images", product.Name, len(product.Images))
	created, err := uc.productRepo.CreateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		releaseImages(ctx, uc.images, uc.log, uploaded...)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %s", created.Name, created.ID)
	return created, nil
}

// UpdateProduct applies only the fields present in input. Each uploaded slot
// replaces the entry with the same slot number or is appended; the blobs of
// replaced entries are released after the product is saved.
func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input domain.ProductInput) (*domain.Product, error) {
	product, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name, ok := input.Name.Get(); ok {
		if strings.TrimSpace(name) == "" {
			return nil, domain.NewValidationError("Name cannot be empty.")
		}
		product.Name = strings.TrimSpace(name)
	}
	product.Description = input.Description.OrElse(product.Description)
	if categoryID, ok := input.CategoryID.Get(); ok {
		if categoryID == "" {
			return nil, domain.NewValidationError("Category cannot be empty.")
		}
		product.Category = domain.Ref{ID: categoryID}
	}
	if subCategoryID, ok := input.SubCategoryID.Get(); ok {
		if subCategoryID == "" {
			return nil, domain.NewValidationError("Subcategory cannot be empty.")
		}
		product.SubCategory = domain.Ref{ID: subCategoryID}
	}
	if err := applyProductFields(product, input); err != nil {
		return nil, err
	}
	if err := validateImageSlots(input.Images); err != nil {
		return nil, err
	}

	uploaded, replaced, err := uc.uploadSlots(ctx, product, input.Images)
	if err != nil {
		return nil, err
	}

	updated, err := uc.productRepo.UpdateProduct(ctx, product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update product ID %s: %v", id, err)
		releaseImages(ctx, uc.images, uc.log, uploaded...)
		return nil, err
	}
	releaseImages(ctx, uc.images, uc.log, replaced...)

	uc.log.Infof("Use Case: Product updated successfully for ID %s", id)
	return updated, nil
}

// DeleteProduct releases every image blob of the product, then removes the record.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	publicIDs := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		publicIDs = append(publicIDs, img.PublicID)
	}
	releaseImages(ctx, uc.images, uc.log, publicIDs...)

	if err := uc.productRepo.DeleteProduct(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %s: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Product deleted successfully for ID %s with %d images", id, len(publicIDs))
	return nil
}

// uploadSlots uploads the files in slot order and stores each result on the
// product. It returns the public ids of the new blobs and of the entries they
// replaced. On failure the blobs uploaded so far are released.
func (uc *productUseCase) uploadSlots(ctx context.Context, product *domain.Product, files map[int]*domain.ImageUpload) ([]string, []string, error) {
	uploaded := []string{}
	var replaced []string
	for slot := domain.MinImageSlot; slot <= domain.MaxImageSlot; slot++ {
		file := files[slot]
		if file == nil {
			continue
		}
		stored, err := uc.images.Upload(ctx, domain.FolderProducts, file)
		if err != nil {
			uc.log.Errorf("Use Case: Upload of image slot %d failed for product '%s': %v", slot, product.Name, err)
			releaseImages(ctx, uc.images, uc.log, uploaded...)
			return nil, nil, err
		}
		uploaded = append(uploaded, stored.PublicID)
		if previous := product.SetImage(slot, *stored); previous != nil {
			replaced = append(replaced, previous.PublicID)
		}
	}
	return uploaded, replaced, nil
}

// applyProductFields copies the present numeric and optional reference fields.
// An empty optional reference clears it.
func applyProductFields(product *domain.Product, input domain.ProductInput) error {
	if quantity, ok := input.Quantity.Get(); ok {
		if quantity < 0 {
			return domain.NewValidationError("Quantity cannot be negative.")
		}
		if quantity > domain.MaxQuantity {
			return domain.NewValidationError("Quantity is too large.")
		}
		product.Quantity = quantity
	}
	if price, ok := input.Price.Get(); ok {
		if price.IsNegative() {
			return domain.NewValidationError("Price cannot be negative.")
		}
		if !domain.ValidPrice(price) {
			return domain.NewValidationError(invalidPriceMessage("Price"))
		}
		product.Price = price
	}
	if offerPrice, ok := input.OfferPrice.Get(); ok {
		if offerPrice.Valid && offerPrice.Decimal.IsNegative() {
			return domain.NewValidationError("Offer price cannot be negative.")
		}
		if offerPrice.Valid && !domain.ValidPrice(offerPrice.Decimal) {
			return domain.NewValidationError(invalidPriceMessage("Offer price"))
		}
		product.OfferPrice = offerPrice
	}
	if id, ok := input.BrandID.Get(); ok {
		product.Brand = refOrNil(id)
	}
	if id, ok := input.VariantTypeID.Get(); ok {
		product.VariantType = refOrNil(id)
	}
	if id, ok := input.VariantID.Get(); ok {
		product.Variant = refOrNil(id)
	}
	return nil
}

func invalidPriceMessage(field string) string {
	return fmt.Sprintf("%s must be below %s with at most %d decimal places.", field, domain.MaxPriceExclusive, domain.PriceDecimals)
}

func validateImageSlots(files map[int]*domain.ImageUpload) error {
	for slot := range files {
		if !domain.ValidImageSlot(slot) {
			return domain.NewValidationError(fmt.Sprintf("Invalid image slot %d.", slot))
		}
	}
	return nil
}

func refOrNil(id string) *domain.Ref {
	if id == "" {
		return nil
	}
	return &domain.Ref{ID: id}
}
