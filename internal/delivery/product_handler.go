package delivery

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"ecommerce_service/internal/domain"
	"ecommerce_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	uploads UploadPolicy
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, uploads UploadPolicy, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		uploads: uploads,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProductByID)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list products", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully.", products)
}

func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id, ok := parseID(c, h.log, "product")
	if !ok {
		return
	}

	product, err := h.useCase.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get product "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully.", product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	input, err := h.parseProductForm(c)
	if err != nil {
		respondError(c, h.log, "read product form", err)
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, "create product", err)
		return
	}

	h.log.Infof("Product created successfully: ID %s, Name %s", product.ID, product.Name)
	SuccessResponse(c, http.StatusOK, "Product created successfully.", product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, h.log, "product")
	if !ok {
		return
	}
	input, err := h.parseProductForm(c)
	if err != nil {
		respondError(c, h.log, "read product form", err)
		return
	}

	product, err := h.useCase.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, "update product "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product updated successfully.", product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, h.log, "product")
	if !ok {
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete product "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product and associated images deleted successfully.", nil)
}

// parseProductForm reads the multipart product form. A field is marked as set
// only when the client sent it, so "0" and "" are real values.
func (h *ProductHandler) parseProductForm(c *gin.Context) (domain.ProductInput, error) {
	input := domain.ProductInput{Images: map[int]*domain.ImageUpload{}}

	for slot := domain.MinImageSlot; slot <= domain.MaxImageSlot; slot++ {
		image, err := h.uploads.ReadImage(c, fmt.Sprintf("image%d", slot))
		if err != nil {
			return domain.ProductInput{}, err
		}
		if image != nil {
			input.Images[slot] = image
		}
	}

	input.Name = formString(c, "name")
	input.Description = formString(c, "description")
	input.CategoryID = formString(c, "proCategoryId")
	input.SubCategoryID = formString(c, "proSubCategoryId")
	input.BrandID = formString(c, "proBrandId")
	input.VariantTypeID = formString(c, "proVariantTypeId")
	input.VariantID = formString(c, "proVariantId")

	if raw, ok := c.GetPostForm("quantity"); ok {
		quantity, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return domain.ProductInput{}, domain.NewValidationError("Quantity must be a whole number.")
		}
		input.Quantity = domain.Some(quantity)
	}
	if raw, ok := c.GetPostForm("price"); ok {
		price, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return domain.ProductInput{}, domain.NewValidationError("Price must be a number.")
		}
		input.Price = domain.Some(price)
	}
	if raw, ok := c.GetPostForm("offerPrice"); ok {
		offerPrice := decimal.NullDecimal{}
		if raw = strings.TrimSpace(raw); raw != "" {
			value, err := decimal.NewFromString(raw)
			if err != nil {
				return domain.ProductInput{}, domain.NewValidationError("Offer price must be a number.")
			}
			offerPrice = decimal.NewNullDecimal(value)
		}
		input.OfferPrice = domain.Some(offerPrice)
	}
	return input, nil
}

func formString(c *gin.Context, key string) domain.Optional[string] {
	if value, ok := c.GetPostForm(key); ok {
		return domain.Some(strings.TrimSpace(value))
	}
	return domain.Optional[string]{}
}
