package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civicgrid/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(secret)
	require.NoError(t, err)
	return s
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(IdentityMiddleware(testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, identityFrom(c))
	})
	admin := r.Group("/", RequireRole(models.RoleAdmin))
	admin.GET("/admin-only", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestIdentityMiddleware_NoToken(t *testing.T) {
	r := protectedRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentityMiddleware_BearerToken(t *testing.T) {
	r := protectedRouter()
	token := signToken(t, jwt.MapClaims{
		"sub":        "stf-1",
		"role":       models.RoleStaff,
		"state":      "Karnataka",
		"district":   "Mysuru",
		"department": models.CategoryWater,
		"exp":        time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "stf-1")
	assert.Contains(t, w.Body.String(), models.CategoryWater)
}

func TestIdentityMiddleware_CookieToken(t *testing.T) {
	r := protectedRouter()
	token := signToken(t, jwt.MapClaims{
		"sub":  "cit-1",
		"role": models.RoleCitizen,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIdentityMiddleware_WrongSecret(t *testing.T) {
	r := protectedRouter()
	token := signToken(t, jwt.MapClaims{
		"sub":  "cit-1",
		"role": models.RoleCitizen,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}, []byte("some-other-secret"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentityMiddleware_ExpiredToken(t *testing.T) {
	r := protectedRouter()
	token := signToken(t, jwt.MapClaims{
		"sub":  "cit-1",
		"role": models.RoleCitizen,
		"exp":  time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentityMiddleware_MissingRoleClaim(t *testing.T) {
	r := protectedRouter()
	token := signToken(t, jwt.MapClaims{
		"sub": "cit-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	r := protectedRouter()
	tests := []struct {
		role string
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleCitizen, http.StatusForbidden},
		{models.RoleStaff, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			token := signToken(t, jwt.MapClaims{
				"sub":      "u-1",
				"role":     tt.role,
				"state":    "X",
				"district": "Y",
				"exp":      time.Now().Add(time.Hour).Unix(),
			}, testSecret)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
