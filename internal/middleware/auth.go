package middleware

import (
	"database/sql"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/atelier/discography-api/internal/audit"
	"github.com/atelier/discography-api/internal/logger"
	"github.com/atelier/discography-api/internal/model"
	"github.com/atelier/discography-api/internal/repository"
	"github.com/atelier/discography-api/internal/token"
)

var bearerRE = regexp.MustCompile(`Bearer\s+(\S+)`)

// BearerToken extracts the bearer token from a request.  Besides the plain
// Authorization header it checks proxy rewrites (HTTP_Authorization) and
// header name casing, since tokens arrive through a mix of reverse proxies
// and CGI-style gateways.
func BearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		auth = r.Header.Get("HTTP_Authorization")
	}
	if auth == "" {
		for name, vals := range r.Header {
			if strings.EqualFold(name, "Authorization") && len(vals) > 0 {
				auth = vals[0]
				break
			}
		}
	}
	if auth == "" {
		return "", false
	}
	m := bearerRE.FindStringSubmatch(auth)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// JWTAuth validates the bearer token and injects the caller's identity into
// the request context under "user_id" (uint64), "email" and "role".  Every
// resolution attempt, failed ones included, leaves a line in the audit
// trail with the caller's IP.
func JWTAuth(secret string, trail *audit.Trail) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := BearerToken(c.Request())
			if !ok {
				trail.IdentityResolved(0, false, c.RealIP())
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}

			claims, ok := token.Decode(raw, secret)
			if !ok {
				trail.IdentityResolved(0, false, c.RealIP())
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// JSON numbers decode as float64.
			idf, ok := claims["user_id"].(float64)
			if !ok || idf <= 0 {
				trail.IdentityResolved(0, false, c.RealIP())
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			userID := uint64(idf)
			trail.IdentityResolved(userID, true, c.RealIP())

			c.Set("user_id", userID)
			if email, ok := claims["email"].(string); ok {
				c.Set("email", email)
			}
			if role, ok := claims["role"].(string); ok {
				c.Set("role", role)
			}
			return next(c)
		}
	}
}

// RequireAdmin aborts with 403 unless the caller resolves to an admin in
// the identity store.  The role is read from the database, not the token:
// tokens live for hours, and a demoted or deleted account must lose its
// admin surface immediately.  Assumes JWTAuth ran earlier in the chain.
func RequireAdmin(users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := UserID(c)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			u, err := users.GetByID(c.Request().Context(), id)
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			if err != nil {
				logger.Log.Errorw("admin gate lookup failed", "user_id", id, "err", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
			}
			if !u.IsAdmin() {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			// Refresh the context role so downstream checks see the stored
			// value rather than the claim.
			c.Set("role", u.Role)
			return next(c)
		}
	}
}

// UserID returns the authenticated user's id from the request context.
func UserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get("user_id").(uint64)
	return id, ok
}

// IsAdmin reports whether the authenticated caller has the admin role.
func IsAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == model.RoleAdmin
}
