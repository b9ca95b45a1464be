package middleware // reusable HTTP middleware shared by every route group

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth and read by handlers.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// failBody is the standard response envelope for middleware rejections.
// Handlers build the same shape through their own helpers; middleware cannot
// import the handler package without a cycle, so the envelope is inlined.
func failBody(message string) echo.Map {
	return echo.Map{"status": false, "message": message, "payload": nil}
}

// JWTAuth validates a Bearer access token and stores the typed subject and
// role claims in the request context under CtxUserID / CtxRole. The identity
// is extracted exactly once here and threaded into handlers as parameters;
// nothing downstream re-parses the token.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, failBody("missing bearer token"))
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Pin the signing method to HMAC; tokens signed any other way
			// are rejected before the claims are even looked at.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, failBody("invalid or expired token"))
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, failBody("invalid claims"))
			}

			// JSON numbers decode as float64; the subject is our numeric user id.
			sub, ok := claims["sub"].(float64)
			if !ok || sub < 1 {
				return c.JSON(http.StatusUnauthorized, failBody("invalid subject"))
			}
			role, _ := claims["role"].(string)

			c.Set(CtxUserID, uint64(sub))
			c.Set(CtxRole, role)
			return next(c)
		}
	}
}
