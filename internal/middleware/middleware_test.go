package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	auth "shorturl-analytics/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newRouter(m *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Identity(m, "token"))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, Owner(c))
	})
	r.GET("/private", RequireLogin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func get(r http.Handler, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdentity(t *testing.T) {
	m := auth.NewManager("secret", "test", 1)
	r := newRouter(m)
	token, err := m.GenerateToken(7, "alice")
	require.NoError(t, err)

	w := get(r, "/whoami", nil)
	assert.Equal(t, "public", w.Body.String())

	w = get(r, "/whoami", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	})
	assert.Equal(t, "alice", w.Body.String())

	w = get(r, "/whoami", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, "alice", w.Body.String())

	w = get(r, "/whoami", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "token", Value: "garbage"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public", w.Body.String())
}

func TestRequireLogin(t *testing.T) {
	m := auth.NewManager("secret", "test", 1)
	r := newRouter(m)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/private", nil).Code)

	token, err := m.GenerateToken(1, "bob")
	require.NoError(t, err)
	w := get(r, "/private", func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGinZapLoggerAndRecovery(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinZapRecovery(logger, false), GinZapLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	assert.Equal(t, http.StatusOK, get(r, "/ok", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, get(r, "/boom", nil).Code)

	assert.Equal(t, 1, logs.FilterMessage("/ok").Len())
	assert.Equal(t, 1, logs.FilterMessage("[Recovery from panic]").Len())
}
