package middleware

import (
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	originsOnce sync.Once
	origins     map[string]bool
)

// allowedOrigins builds the origin allow-list once, after main has had
// a chance to load the env file.
func allowedOrigins() map[string]bool {
	originsOnce.Do(func() {
		// Local development origins are always allowed.
		origins = map[string]bool{
			"http://localhost:3000": true,
			"http://localhost:5173": true,
			"http://127.0.0.1:3000": true,
			"http://127.0.0.1:5173": true,
		}

		// Extra origins from env, e.g.
		// CORS_ALLOWED_ORIGINS=https://desk.example.com,https://admin.example.com
		if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
			for _, o := range strings.Split(extra, ",") {
				o = strings.TrimSpace(o)
				if o != "" {
					origins[o] = true
				}
			}
		}
	})
	return origins
}

// OriginAllowed reports whether a browser origin may reach the API.
// The websocket upgrader shares this list with the CORS middleware.
func OriginAllowed(origin string) bool {
	return allowedOrigins()[origin]
}

func CORS() gin.HandlerFunc {
	allowed := allowedOrigins()

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// Reflect allowed origins (required when credentials are used).
		if origin != "" && allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Authorization, Accept, Origin, X-Requested-With, X-File-Name")
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Max-Age", "600")

		// Preflight requests must finish before the JWT middleware runs.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
