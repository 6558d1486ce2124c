package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() { gin.SetMode(gin.TestMode) }

func signToken(t *testing.T, secret string, userID string, roles []string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   "admin@example.com",
		"roles":   roles,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func protected(roles ...string) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{JWTAuth(testSecret)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, ActorID(c).String())
	})
	r.GET("/me", handlers...)
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	id := uuid.New()
	w := get(protected(), "/me", signToken(t, testSecret, id.String(), []string{"admin"}, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), w.Body.String())
}

func TestJWTAuthRejects(t *testing.T) {
	id := uuid.NewString()
	cases := map[string]string{
		"missing":      "",
		"wrong secret": signToken(t, "other", id, nil, time.Hour),
		"expired":      signToken(t, testSecret, id, nil, -time.Minute),
		"bad user id":  signToken(t, testSecret, "not-a-uuid", nil, time.Hour),
	}
	for name, token := range cases {
		w := get(protected(), "/me", token)
		assert.Equal(t, http.StatusUnauthorized, w.Code, name)
	}
}

func TestRequireRole(t *testing.T) {
	id := uuid.NewString()
	r := protected("admin")

	w := get(r, "/me", signToken(t, testSecret, id, []string{"storekeeper", "admin"}, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/me", signToken(t, testSecret, id, []string{"storekeeper"}, time.Hour))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestActorIDWithoutClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uuid.Nil, ActorID(c))
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = get(r, "/", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestErrorHandlerRendersClassifiedErrors(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(apierror.NotFound("Brand not found")) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("pq: connection refused")) })

	w := get(r, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Brand not found"}`, w.Body.String())

	w = get(r, "/boom", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestRecoveryHidesPanic(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("secret detail") })

	w := get(r, "/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body apierror.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body.Message)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://app.example.com"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLimiterWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLimiter(2, time.Minute, "slow down")
	l.now = func() time.Time { return now }

	ok, _ := l.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok)
	ok, _ = l.Allow("1.2.3.4")
	assert.False(t, ok)
	ok, _ = l.Allow("5.6.7.8")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 2, l.Purge())
	ok, _ = l.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestLimiterMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(NewLimiter(1, time.Minute, "slow down").Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	w := get(r, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}
