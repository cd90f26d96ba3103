package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSessionRequired(t *testing.T) {
	router := gin.New()
	router.GET("/protected", SessionRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})

	t.Run("header session is accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(SessionHeader, "sess-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sess-123", w.Body.String())
	})

	t.Run("query fallback is accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected?session_id=sess-456", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "sess-456", w.Body.String())
	})

	t.Run("missing session is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSessionOptional(t *testing.T) {
	router := gin.New()
	router.GET("/open", SessionOptional(), func(c *gin.Context) {
		c.String(http.StatusOK, SessionID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret"}}

	handler := func(c *gin.Context) {
		if id := UserID(c); id != nil {
			c.String(http.StatusOK, id.String())
			return
		}
		c.String(http.StatusOK, "anonymous")
	}

	router := gin.New()
	router.GET("/maybe-auth", OptionalAuth(cfg), handler)

	t.Run("valid token attaches the user", func(t *testing.T) {
		userID := uuid.New()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID.String(),
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/maybe-auth", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		router.ServeHTTP(w, req)

		assert.Equal(t, userID.String(), w.Body.String())
	})

	t.Run("garbage token degrades to anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/maybe-auth", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "anonymous", w.Body.String())
	})

	t.Run("no header degrades to anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/maybe-auth", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, "anonymous", w.Body.String())
	})
}
