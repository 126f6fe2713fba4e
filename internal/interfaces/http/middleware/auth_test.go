package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/infrastructure/auth"
	"github.com/pyasti/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters!!",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "pyasti-test",
	})
}

func newTestEngine(jwtService *auth.JWTService, roles ...identity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	handlers := []gin.HandlerFunc{Authenticate(jwtService)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c).String(),
			"role":    string(GetRole(c)),
		})
	})

	engine.GET("/probe", handlers...)
	return engine
}

func issueToken(t *testing.T, jwtService *auth.JWTService, role identity.Role) string {
	t.Helper()
	user, err := identity.NewUser("Test User", "test@example.com", "", "hash", role)
	require.NoError(t, err)
	pair, err := jwtService.GeneratePair(user)
	require.NoError(t, err)
	return pair.AccessToken
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	jwtService := newTestJWTService(t)
	engine := newTestEngine(jwtService)
	token := issueToken(t, jwtService, identity.RoleBuyer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"buyer"`)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	engine := newTestEngine(newTestJWTService(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
}

func TestAuthenticateRejectsMalformedHeader(t *testing.T) {
	jwtService := newTestJWTService(t)
	engine := newTestEngine(jwtService)
	token := issueToken(t, jwtService, identity.RoleBuyer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Token "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	jwtService := newTestJWTService(t)
	engine := newTestEngine(jwtService, identity.RoleSeller, identity.RoleAdmin)
	token := issueToken(t, jwtService, identity.RoleSeller)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesRejectsOtherRoles(t *testing.T) {
	jwtService := newTestJWTService(t)
	engine := newTestEngine(jwtService, identity.RoleAdmin)
	token := issueToken(t, jwtService, identity.RoleBuyer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}
