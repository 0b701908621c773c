package urlcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "https://example.com", Normalize("example.com", "https"))
	assert.Equal(t, "http://example.com", Normalize("http://example.com", "https"))
	assert.Equal(t, "HTTPS://example.com", Normalize("HTTPS://example.com", "http"))
}

func TestHeadChecker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/moved":
			http.Redirect(w, r, "/elsewhere", http.StatusMovedPermanently)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewHeadChecker(2*time.Second, "http")
	ctx := context.Background()

	assert.True(t, c.Reachable(ctx, srv.URL+"/ok"))
	assert.True(t, c.Reachable(ctx, srv.URL+"/moved"))
	assert.False(t, c.Reachable(ctx, srv.URL+"/missing"))
	// 去掉协议后按默认协议补全
	assert.True(t, c.Reachable(ctx, strings.TrimPrefix(srv.URL, "http://")+"/ok"))
	assert.False(t, c.Reachable(ctx, ""))
	assert.False(t, c.Reachable(ctx, "http://127.0.0.1:1/"))
}

func TestAllowAll(t *testing.T) {
	assert.True(t, AllowAll{}.Reachable(context.Background(), "example.com"))
	assert.False(t, AllowAll{}.Reachable(context.Background(), "  "))
}
