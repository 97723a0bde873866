package middleware

import (
	"net/http"
	"strings"

	"gatherly/core/logger"
	"gatherly/core/router"
	"gatherly/core/types"
)

// Recovery converts handler panics into a 500 response instead of
// tearing down the connection.
func Recovery(log logger.Logger) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("Handler panic",
						logger.String("path", c.Request.URL.Path),
						logger.Any("panic", r))
					err = c.JSON(http.StatusInternalServerError,
						types.ErrorResponse{Error: "Internal server error"})
				}
			}()
			return next(c)
		}
	}
}

// CORSMiddleware answers preflight requests and sets CORS headers for the
// allowed origins ("*" allows any).
func CORSMiddleware(allowedOrigins []string) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			origin := c.Request.Header.Get("Origin")
			if origin != "" && originAllowed(origin, allowedOrigins) {
				header := c.Writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Credentials", "true")
				header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				header.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Api-Key")
			}

			if c.Request.Method == http.MethodOptions {
				c.Status(http.StatusNoContent)
				return nil
			}

			return next(c)
		}
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}
