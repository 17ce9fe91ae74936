package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"yatube/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newEngine(user *models.User, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(CheckUserKey, user)
		}
		c.Next()
	})
	r.Use(mw...)
	r.GET("/private", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired(t *testing.T) {
	rec := serve(newEngine(nil, AuthRequired()), httptest.NewRequest(http.MethodGet, "/private?x=1", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login?next=%2Fprivate%3Fx%3D1", rec.Header().Get("Location"))

	rec = serve(newEngine(&models.User{ID: 1}, AuthRequired()), httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRequired(t *testing.T) {
	rec := serve(newEngine(&models.User{ID: 1, Role: "user"}, AdminRequired()), httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(newEngine(&models.User{ID: 1, Role: "admin"}, AdminRequired()), httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := newEngine(nil, RequestLogger(zap.New(core)))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec = serve(r, req)
	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "fixed-id", entries[1].ContextMap()["request_id"])
		assert.Equal(t, int64(http.StatusOK), entries[1].ContextMap()["status"])
	}
}
