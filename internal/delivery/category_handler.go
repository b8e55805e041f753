package delivery

import (
	"net/http"

	"ecommerce_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const categoryImageField = "img"

type categoryRequest struct {
	Name  string `form:"name" json:"name"`
	Image string `form:"image" json:"image"`
}

type CategoryHandler struct {
	useCase usecase.CategoryUseCase
	uploads UploadPolicy
	log     *logrus.Logger
}

func NewCategoryHandler(uc usecase.CategoryUseCase, uploads UploadPolicy, logger *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{
		useCase: uc,
		uploads: uploads,
		log:     logger,
	}
}

func (h *CategoryHandler) RegisterRoutes(router gin.IRouter) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategoryByID)
		categories.POST("", h.CreateCategory)
		categories.PUT("/:id", h.UpdateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list categories", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully.", categories)
}

func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	id, ok := parseID(c, h.log, "category")
	if !ok {
		return
	}

	category, err := h.useCase.GetCategoryByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get category "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Category retrieved successfully.", category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	category, err := h.useCase.CreateCategory(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, "create category", err)
		return
	}

	h.log.Infof("Category created successfully: ID %s, Name %s", category.ID, category.Name)
	SuccessResponse(c, http.StatusOK, "Category created successfully.", category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, h.log, "category")
	if !ok {
		return
	}
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	category, err := h.useCase.UpdateCategory(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, "update category "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Category updated successfully.", category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, h.log, "category")
	if !ok {
		return
	}

	if err := h.useCase.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete category "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Category deleted successfully.", nil)
}

func (h *CategoryHandler) bindInput(c *gin.Context) (usecase.CategoryInput, bool) {
	image, err := h.uploads.ReadImage(c, categoryImageField)
	if err != nil {
		respondError(c, h.log, "read category image", err)
		return usecase.CategoryInput{}, false
	}

	var req categoryRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warnf("Failed to bind category request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return usecase.CategoryInput{}, false
	}
	return usecase.CategoryInput{Name: req.Name, Image: image, ImageURL: req.Image}, true
}
