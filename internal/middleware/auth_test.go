package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, exp time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": "7b0e3c59-0000-0000-0000-000000000001",
		"email":   "admin@cicloharmony.com",
		"role":    role,
		"exp":     time.Now().Add(exp).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": GetClaims(c).Email})
	})
	r.GET("/secure", handlers...)
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/secure", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	w := doGet(protectedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	token := signToken(t, testSecret, "admin", time.Hour)
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@cicloharmony.com")
}

func TestJWTAuthExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, "admin", -time.Hour)
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	token := signToken(t, "otro-secreto", "admin", time.Hour)
	w := doGet(protectedRouter(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	token := signToken(t, testSecret, "admin", time.Hour)
	w := doGet(protectedRouter("superadmin"), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	token := signToken(t, testSecret, "superadmin", time.Hour)
	w := doGet(protectedRouter("admin", "superadmin"), "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}
