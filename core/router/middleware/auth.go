package middleware

import (
	"net/http"
	"strings"

	"gatherly/core/router"
	"gatherly/core/types"

	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the Bearer token and stashes the user id in the
// context under "user_id". Requests without a valid token get a 401.
func AuthMiddleware(secret string) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			userId, errMsg := userIdFromBearer(c, secret)
			if errMsg != "" {
				return c.JSON(http.StatusUnauthorized, types.ErrorResponse{Error: errMsg})
			}

			c.Set("user_id", userId)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware stashes the user id when a valid Bearer token is
// present and passes the request through either way. Handlers that need a
// user decide what an absent id means.
func OptionalAuthMiddleware(secret string) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c *router.Context) error {
			if userId, errMsg := userIdFromBearer(c, secret); errMsg == "" {
				c.Set("user_id", userId)
			}
			return next(c)
		}
	}
}

func userIdFromBearer(c *router.Context, secret string) (uint, string) {
	header := c.Request.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, "Missing or malformed authorization header"
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "Invalid or expired token"
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "Invalid token claims"
	}

	sub, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "Invalid token claims"
	}

	return uint(sub), ""
}
