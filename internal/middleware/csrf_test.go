package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCSRF(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config := CSRFConfig{
		AllowedOrigins: []string{
			"https://todo.example.com",
		},
	}

	tests := []struct {
		name       string
		method     string
		origin     string
		referer    string
		wantStatus int
	}{
		{
			name:       "GET request passes without headers",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
		{
			name:       "HEAD request passes without headers",
			method:     http.MethodHead,
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST with allowed origin passes",
			method:     http.MethodPost,
			origin:     "https://todo.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST with allowed origin (trailing slash, upper case) passes",
			method:     http.MethodPost,
			origin:     "HTTPS://TODO.EXAMPLE.COM/",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST from the serving host passes",
			method:     http.MethodPost,
			origin:     "http://example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST with foreign origin blocked",
			method:     http.MethodPost,
			origin:     "https://evil.com",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "POST with same-host referer passes",
			method:     http.MethodPost,
			referer:    "http://example.com/todo/new",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST with foreign referer blocked",
			method:     http.MethodPost,
			referer:    "https://evil.com/todo/new",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "origin wins over referer",
			method:     http.MethodPost,
			origin:     "https://evil.com",
			referer:    "http://example.com/dashboard",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "POST without headers blocked",
			method:     http.MethodPost,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "DELETE without headers blocked",
			method:     http.MethodDelete,
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CSRF(config))
			router.Handle(tt.method, "/form", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, "/form", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestExtractOrigin(t *testing.T) {
	assert.Equal(t, "https://example.com:8443", extractOrigin("https://example.com:8443/path?q=1"))
}
