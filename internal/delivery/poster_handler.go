package delivery

import (
	"net/http"

	"ecommerce_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const posterImageField = "img"

type posterRequest struct {
	PosterName string `form:"posterName" json:"posterName"`
	ImageURL   string `form:"imageUrl" json:"imageUrl"`
}

type PosterHandler struct {
	useCase usecase.PosterUseCase
	uploads UploadPolicy
	log     *logrus.Logger
}

func NewPosterHandler(uc usecase.PosterUseCase, uploads UploadPolicy, logger *logrus.Logger) *PosterHandler {
	return &PosterHandler{
		useCase: uc,
		uploads: uploads,
		log:     logger,
	}
}

func (h *PosterHandler) RegisterRoutes(router gin.IRouter) {
	posters := router.Group("/posters")
	{
		posters.GET("", h.ListPosters)
		posters.GET("/:id", h.GetPosterByID)
		posters.POST("", h.CreatePoster)
		posters.PUT("/:id", h.UpdatePoster)
		posters.DELETE("/:id", h.DeletePoster)
	}
}

func (h *PosterHandler) ListPosters(c *gin.Context) {
	posters, err := h.useCase.ListPosters(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list posters", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Posters retrieved successfully.", posters)
}

func (h *PosterHandler) GetPosterByID(c *gin.Context) {
	id, ok := parseID(c, h.log, "poster")
	if !ok {
		return
	}

	poster, err := h.useCase.GetPosterByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get poster "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Poster retrieved successfully.", poster)
}

func (h *PosterHandler) CreatePoster(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	poster, err := h.useCase.CreatePoster(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, "create poster", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Poster created successfully.", poster)
}

func (h *PosterHandler) UpdatePoster(c *gin.Context) {
	id, ok := parseID(c, h.log, "poster")
	if !ok {
		return
	}
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	poster, err := h.useCase.UpdatePoster(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.log, "update poster "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Poster updated successfully.", poster)
}

func (h *PosterHandler) DeletePoster(c *gin.Context) {
	id, ok := parseID(c, h.log, "poster")
	if !ok {
		return
	}

	if err := h.useCase.DeletePoster(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete poster "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Poster deleted successfully.", nil)
}

// bindInput reads the poster form. Upload failures answer 400 like every other resource.
func (h *PosterHandler) bindInput(c *gin.Context) (usecase.PosterInput, bool) {
	image, err := h.uploads.ReadImage(c, posterImageField)
	if err != nil {
		respondError(c, h.log, "read poster image", err)
		return usecase.PosterInput{}, false
	}

	var req posterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warnf("Failed to bind poster request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return usecase.PosterInput{}, false
	}
	return usecase.PosterInput{PosterName: req.PosterName, Image: image, ImageURL: req.ImageURL}, true
}
