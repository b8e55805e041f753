package delivery

import (
	"net/http"

	"ecommerce_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type subCategoryRequest struct {
	Name       string `form:"name" json:"name"`
	CategoryID string `form:"categoryId" json:"categoryId"`
}

type brandRequest struct {
	Name          string `form:"name" json:"name"`
	SubCategoryID string `form:"subcategoryId" json:"subcategoryId"`
}

type variantTypeRequest struct {
	Name string `form:"name" json:"name"`
	Type string `form:"type" json:"type"`
}

type variantRequest struct {
	Name          string `form:"name" json:"name"`
	VariantTypeID string `form:"variantTypeId" json:"variantTypeId"`
}

func bindRequest(c *gin.Context, log *logrus.Logger, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		log.Warnf("Failed to bind request body: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	return true
}

type SubCategoryHandler struct {
	useCase usecase.SubCategoryUseCase
	log     *logrus.Logger
}

func NewSubCategoryHandler(uc usecase.SubCategoryUseCase, logger *logrus.Logger) *SubCategoryHandler {
	return &SubCategoryHandler{useCase: uc, log: logger}
}

func (h *SubCategoryHandler) RegisterRoutes(router gin.IRouter) {
	subs := router.Group("/subCategories")
	{
		subs.GET("", h.ListSubCategories)
		subs.GET("/:id", h.GetSubCategoryByID)
		subs.POST("", h.CreateSubCategory)
		subs.PUT("/:id", h.UpdateSubCategory)
		subs.DELETE("/:id", h.DeleteSubCategory)
	}
}

func (h *SubCategoryHandler) ListSubCategories(c *gin.Context) {
	subs, err := h.useCase.ListSubCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list subcategories", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Sub-categories retrieved successfully.", subs)
}

func (h *SubCategoryHandler) GetSubCategoryByID(c *gin.Context) {
	id, ok := parseID(c, h.log, "subcategory")
	if !ok {
		return
	}
	sub, err := h.useCase.GetSubCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get subcategory "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Sub-category retrieved successfully.", sub)
}

func (h *SubCategoryHandler) CreateSubCategory(c *gin.Context) {
	var req subCategoryRequest
	if !bindRequest(c, h.log, &req) {
		return
	}
	sub, err := h.useCase.CreateSubCategory(c.Request.Context(), req.Name, req.CategoryID)
	if err != nil {
		respondError(c, h.log, "create subcategory", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Sub-category created successfully.", sub)
}

func (h *SubCategoryHandler) UpdateSubCategory(c *gin.Context) {
	id, ok := parseID(c, h.log, "subcategory")
	if !ok {
		return
	}
	var req subCategoryRequest
	if !bindRequest(c, h.log, &req) {
		return
	}
	sub, err := h.useCase.UpdateSubCategory(c.Request.Context(), id, req.Name, req.CategoryID)
	if err != nil {
		respondError(c, h.log, "update subcategory "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Sub-category updated successfully.", sub)
}

func (h *SubCategoryHandler) DeleteSubCategory(c *gin.Context) {
	id, ok := parseID(c, h.log, "subcategory")
	if !ok {
		return
	}
	if err := h.useCase.DeleteSubCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete subcategory "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Sub-category deleted successfully.", nil)
}

type BrandHandler struct {
	useCase usecase.BrandUseCase
	log     *logrus.Logger
}

func NewBrandHandler(uc usecase.BrandUseCase, logger *logrus.Logger) *BrandHandler {
	return &BrandHandler{useCase: uc, log: logger}
}

func (h *BrandHandler) RegisterRoutes(router gin.IRouter) {
	brands := router.Group("/brands")
	{
		brands.GET("", h.ListBrands)
		brands.GET("/:id", h.GetBrandByID)
		brands.POST("", h.CreateBrand)
		brands.PUT("/:id", h.UpdateBrand)
		brands.DELETE("/:id", h.DeleteBrand)
	}
}

func (h *BrandHandler) ListBrands(c *gin.Context) {
	brands, err := h.useCase.ListBrands(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list brands", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Brands retrieved successfully.", brands)
}

func (h *BrandHandler) GetBrandByID(c *gin.Context) {
	id, ok := parseID(c, h.log, "brand")
	if !ok {
		return
	}
	brand, err := h.useCase.GetBrandByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get brand "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Brand retrieved successfully.", brand)
}

func (h *BrandHandler) CreateBrand(c *gin.Context) {
	var req brandRequest
	if !bindRequest(c, h.log, &req) {
		return
	}
	brand, err := h.useCase.CreateBrand(c.Request.Context(), req.Name, req.SubCategoryID)
	if err != nil {
		respondError(c, h.log, "create brand", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Brand created successfully.", brand)
}

func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	id, ok := parseID(c, h.log, "brand")
	if !ok {
		return
	}
	var req brandRequest
	if !bindRequest(c, h.log, &req) {
		return
	}
	brand, err := h.useCase.UpdateBrand(c.Request.Context(), id, req.Name, req.SubCategoryID)
	if err != nil {
		respondError(c, h.log, "update brand "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Brand updated successfully.", brand)
}

func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	id, ok := parseID(c, h.log, "brand")
	if !ok {
		return
	}
	if err := h.useCase.DeleteBrand(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete brand "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Brand deleted successfully.", nil)
}

type VariantTypeHandler struct {
	useCase usecase.VariantTypeUseCase
	log     *logrus.Logger
}

func NewVariantTypeHandler(uc usecase.VariantTypeUseCase, logger *logrus.Logger) *VariantTypeHandler {
	return &VariantTypeHandler{useCase: uc, log: logger}
}

func (h *VariantTypeHandler) RegisterRoutes(router gin.IRouter) {
	types := router.Group("/variantTypes")
	{
		types.GET("", h.ListVariantTypes)
		types.GET("/:id", h.GetVariantTypeByID)
		types.POST("", h.CreateVariantType)
		types.PUT("/:id", h.UpdateVariantType)
		types.DELETE("/:id", h.DeleteVariantType)
	}
}

func (h *VariantTypeHandler) ListVariantTypes(c *gin.Context) {
	types, err := h.useCase.ListVariantTypes(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list variant types", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "VariantTypes retrieved successfully.", types)
}

func (h *VariantTypeHandler) GetVariantTypeByID(c *gin.Context) {
	id, ok := parseID(c, h.log, "variant type")
	if !ok {
		return
	}
	vt, err := h.useCase.GetVariantTypeByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get variant type "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "VariantType retrieved successfully.", vt)
}

func (h *VariantTypeHandler) CreateVariantType(c *gin.Context) {
	var req variantTypeRequest
	if !bindRequest(c, h.log, &req) {
		return
	}
	vt, err := h.useCase.CreateVariantType(c.Request.Context(), req.Name, req.Type)
	if err != nil {
		respondError(c, h.log, "create variant type", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "VariantType created successfully.", vt)
}

func (h *VariantTypeHandler) UpdateVariantType(c *gin.Context) {
	id, ok := parseID(c, h.log, "variant type")
	if !ok {
		return
	}
	var req variantTypeRequest
	if !bindRequest(c, h.log, &req) {
		return
	}
	vt, err := h.useCase.UpdateVariantType(c.Request.Context(), id, req.Name, req.Type)
	if err != nil {
		respondError(c, h.log, "update variant type "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "VariantType updated successfully.", vt)
}

func (h *VariantTypeHandler) DeleteVariantType(c *gin.Context) {
	id, ok := parseID(c, h.log, "variant type")
	if !ok {
		return
	}
	if err := h.useCase.DeleteVariantType(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete variant type "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "VariantType deleted successfully.", nil)
}

type VariantHandler struct {
	useCase usecase.VariantUseCase
	log     *logrus.Logger
}

func NewVariantHandler(uc usecase.VariantUseCase, logger *logrus.Logger) *VariantHandler {
	return &VariantHandler{useCase: uc, log: logger}
}

func (h *VariantHandler) RegisterRoutes(router gin.IRouter) {
	variants := router.Group("/variants")
	{
		variants.GET("", h.ListVariants)
		variants.GET("/:id", h.GetVariantByID)
		variants.POST("", h.CreateVariant)
		variants.PUT("/:id", h.UpdateVariant)
		variants.DELETE("/:id", h.DeleteVariant)
	}
}

func (h *VariantHandler) ListVariants(c *gin.Context) {
	variants, err := h.useCase.ListVariants(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list variants", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Variants retrieved successfully.", variants)
}

func (h *VariantHandler) GetVariantByID(c *gin.Context) {
	id, ok := parseID(c, h.log, "variant")
	if !ok {
		return
	}
	variant, err := h.useCase.GetVariantByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get variant "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Variant retrieved successfully.", variant)
}

func (h *VariantHandler) CreateVariant(c *gin.Context) {
	var req variantRequest
	if !bindRequest(c, h.log, &req) {
		return
	}
	variant, err := h.useCase.CreateVariant(c.Request.Context(), req.Name, req.VariantTypeID)
	if err != nil {
		respondError(c, h.log, "create variant", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Variant created successfully.", variant)
}

func (h *VariantHandler) UpdateVariant(c *gin.Context) {
	id, ok := parseID(c, h.log, "variant")
	if !ok {
		return
	}
	var req variantRequest
	if !bindRequest(c, h.log, &req) {
		return
	}
	variant, err := h.useCase.UpdateVariant(c.Request.Context(), id, req.Name, req.VariantTypeID)
	if err != nil {
		respondError(c, h.log, "update variant "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Variant updated successfully.", variant)
}

func (h *VariantHandler) DeleteVariant(c *gin.Context) {
	id, ok := parseID(c, h.log, "variant")
	if !ok {
		return
	}
	if err := h.useCase.DeleteVariant(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete variant "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Variant deleted successfully.", nil)
}
