package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobmarket/internal/authz"
	"jobmarket/internal/token"
)

func newAuthRouter(codec *token.Codec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(codec))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	r.GET("/admin-only", RequireRoles(authz.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func mintToken(t *testing.T, codec *token.Codec, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	tok, err := codec.Sign(token.Claims{
		UserID:   "u-1",
		Email:    "x@rmu.ac.th",
		Role:     role,
		IssuedAt: now.Unix(),
		Expires:  now.Add(ttl).Unix(),
	})
	require.NoError(t, err)
	return tok
}

func TestAuth_ValidToken(t *testing.T) {
	codec := token.NewCodec("test-secret")
	r := newAuthRouter(codec)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, codec, "student", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u-1"`)
	assert.Contains(t, w.Body.String(), `"role":"student"`)
}

func TestAuth_MissingHeader(t *testing.T) {
	r := newAuthRouter(token.NewCodec("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_BadScheme(t *testing.T) {
	codec := token.NewCodec("test-secret")
	r := newAuthRouter(codec)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic "+mintToken(t, codec, "student", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	codec := token.NewCodec("test-secret")
	r := newAuthRouter(codec)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, codec, "student", -time.Minute))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	r := newAuthRouter(token.NewCodec("right-secret"))
	other := token.NewCodec("wrong-secret")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, other, "student", time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoles(t *testing.T) {
	codec := token.NewCodec("test-secret")
	r := newAuthRouter(codec)

	cases := []struct {
		role string
		want int
	}{
		{authz.RoleAdmin, http.StatusOK},
		{authz.RoleStudent, http.StatusForbidden},
		{authz.RoleEmployer, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+mintToken(t, codec, tc.role, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Code, "role %s", tc.role)
	}
}
