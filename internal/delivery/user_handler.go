package delivery

import (
	"net/http"

	"ecommerce_service/internal/domain"
	"ecommerce_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type userRequest struct {
	Name     string `form:"name" json:"name"`
	Password string `form:"password" json:"password"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	Data    *domain.User `json:"data"`
}

type UserHandler struct {
	useCase usecase.UserUseCase
	log     *logrus.Logger
}

func NewUserHandler(uc usecase.UserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterRoutes mounts the user routes. The per-user routes sit behind authMiddleware.
func (h *UserHandler) RegisterRoutes(router gin.IRouter, authMiddleware gin.HandlerFunc) {
	users := router.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)

		protected := users.Group("", authMiddleware)
		protected.GET("/:id", h.GetUserByID)
		protected.PUT("/:id", h.UpdateUser)
		protected.DELETE("/:id", h.DeleteUser)
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.useCase.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list users", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Users retrieved successfully.", users)
}

func (h *UserHandler) Register(c *gin.Context) {
	req, ok := h.bindUser(c)
	if !ok {
		return
	}

	if err := h.useCase.Register(c.Request.Context(), req.Name, req.Password); err != nil {
		respondError(c, h.log, "register user", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "User created successfully.", nil)
}

func (h *UserHandler) Login(c *gin.Context) {
	req, ok := h.bindUser(c)
	if !ok {
		return
	}

	auth, err := h.useCase.Login(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		respondError(c, h.log, "log in", err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful.",
		Token:   auth.Token,
		Data:    auth.User,
	})
}

func (h *UserHandler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c, h.log, "user")
	if !ok {
		return
	}

	user, err := h.useCase.GetUserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get user "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "User retrieved successfully.", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, h.log, "user")
	if !ok {
		return
	}
	req, ok := h.bindUser(c)
	if !ok {
		return
	}

	user, err := h.useCase.UpdateUser(c.Request.Context(), id, req.Name, req.Password)
	if err != nil {
		respondError(c, h.log, "update user "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "User updated successfully.", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, h.log, "user")
	if !ok {
		return
	}

	if err := h.useCase.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.log, "delete user "+id, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "User deleted successfully.", nil)
}

func (h *UserHandler) bindUser(c *gin.Context) (userRequest, bool) {
	var req userRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warnf("Failed to bind user request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body.")
		return req, false
	}
	return req, true
}
