package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/infrastructure/auth"
	"github.com/pyasti/backend/internal/interfaces/http/dto"
)

const (
	contextKeyUserID   = "user_id"
	contextKeyRole     = "role"
	contextKeyLanguage = "language"
)

// Authenticate validates the bearer token and stores the caller's
// identity on the request context
func Authenticate(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abortUnauthenticated(c, "Authentication required")
			return
		}

		claims, err := jwtService.ParseAccessToken(token)
		if err != nil {
			abortUnauthenticated(c, "Invalid or expired token")
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			abortUnauthenticated(c, "Invalid token claims")
			return
		}

		c.Set(contextKeyUserID, userID)
		c.Set(contextKeyRole, identity.Role(claims.Role))
		c.Set(contextKeyLanguage, claims.Language)
		c.Next()
	}
}

// RequireRoles rejects authenticated callers whose role is not listed
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient permissions"))
	}
}

// GetUserID returns the authenticated user's ID, or uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(contextKeyUserID); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetRole returns the authenticated user's role, or the empty role
func GetRole(c *gin.Context) identity.Role {
	if v, ok := c.Get(contextKeyRole); ok {
		if role, ok := v.(identity.Role); ok {
			return role
		}
	}
	return identity.Role("")
}

// GetLanguage returns the authenticated user's preferred language
func GetLanguage(c *gin.Context) string {
	return c.GetString(contextKeyLanguage)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthenticated, message))
}
