package delivery

import (
	"errors"
	"net/http"

	"ecommerce_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "Internal server error."

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}

// respondError writes err as an error envelope. Errors without a domain kind
// are logged and answered with a generic message.
func respondError(c *gin.Context, log *logrus.Logger, action string, err error) {
	statusCode := mapErrorToStatus(err)
	if statusCode == http.StatusInternalServerError {
		log.Errorf("Failed to %s: %v", action, err)
		ErrorResponse(c, statusCode, internalErrorMessage)
		return
	}

	message := err.Error()
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}
	log.Warnf("Failed to %s: %v", action, err)
	ErrorResponse(c, statusCode, message)
}

// parseID reads the :id path parameter. Invalid ids are answered with 400.
func parseID(c *gin.Context, log *logrus.Logger, entity string) (string, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		log.Warnf("Invalid %s ID parameter: %s", entity, idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid "+entity+" ID format")
		return "", false
	}
	return id.String(), true
}
