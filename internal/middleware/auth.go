package middleware

import (
	"context"
	"net/http"
	"strings"

	"ecommerce_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserIDKey is the gin context key holding the authenticated user id.
const UserIDKey = "userID"

type contextKey struct{}

var userIDContextKey = contextKey{}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}

// UserIDFromContext returns the user id stored by AuthMiddleware, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	return userID, ok && userID != ""
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AuthMiddleware requires a bearer session token. A missing token answers
// 401, a token that fails verification answers 403.
func AuthMiddleware(tokens domain.TokenIssuer, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken := bearerToken(c.GetHeader("Authorization"))
		if rawToken == "" {
			log.Warn("Middleware: Authorization token is missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Success: false, Message: "No token provided."})
			return
		}

		userID, err := tokens.Verify(rawToken)
		if err != nil {
			log.Warnf("Middleware: Token rejected: %v", err)
			c.AbortWithStatusJSON(http.StatusForbidden, envelope{Success: false, Message: "Token is not valid."})
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>". A bare token without
// the scheme is accepted as well.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	switch {
	case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
		return parts[1]
	case len(parts) == 1 && !strings.EqualFold(parts[0], "bearer"):
		return parts[0]
	}
	return ""
}
