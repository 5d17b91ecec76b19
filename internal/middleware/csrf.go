package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/todo-tracker/internal/errors"
)

// CSRFConfig holds configuration for CSRF protection middleware.
type CSRFConfig struct {
	// AllowedOrigins lists the scheme://host[:port] values forms may be posted from.
	AllowedOrigins []string
}

// CSRF returns middleware that validates Origin/Referer headers on
// state-changing requests. Requests from the serving host always pass.
func CSRF(config CSRFConfig) gin.HandlerFunc {
	allowedSet := make(map[string]bool)
	for _, origin := range config.AllowedOrigins {
		allowedSet[normalizeOrigin(origin)] = true
	}

	return func(c *gin.Context) {
		method := c.Request.Method
		if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
			c.Next()
			return
		}

		allowed := func(origin string) bool {
			return allowedSet[normalizeOrigin(origin)] || sameHost(origin, c.Request.Host)
		}

		if origin := c.GetHeader("Origin"); origin != "" {
			if !allowed(origin) {
				apierrors.Forbidden(c, "CSRF validation failed: invalid origin")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		if referer := c.GetHeader("Referer"); referer != "" {
			if !allowed(extractOrigin(referer)) {
				apierrors.Forbidden(c, "CSRF validation failed: invalid referer")
				c.Abort()
				return
			}
			c.Next()
			return
		}

		apierrors.Forbidden(c, "CSRF validation failed: missing origin")
		c.Abort()
	}
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(origin), "/")
}

func sameHost(origin, host string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	return strings.EqualFold(parsed.Host, host)
}

// extractOrigin extracts the origin (scheme://host:port) from a URL.
func extractOrigin(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}
