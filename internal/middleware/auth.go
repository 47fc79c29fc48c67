package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// userContextKey is where Authenticate stores the resolved user for
// downstream middleware and handlers.
const userContextKey = "auth_user"

// TokenVerifier is the slice of the auth service this middleware needs:
// token verification plus user resolution.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticate returns a middleware that extracts a bearer token from the
// Authorization header, verifies it, resolves the backing user and
// attaches it to the request context. Missing or malformed headers,
// invalid tokens and tokens for vanished users all abort with 401.
func Authenticate(svc TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return failJSON(c, http.StatusUnauthorized, "Authentication token is required")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			userID, err := svc.VerifyToken(raw)
			if err != nil {
				return failJSON(c, http.StatusUnauthorized, "Invalid or expired token")
			}

			u, err := svc.GetUserByID(c.Request().Context(), userID)
			if err != nil {
				return failJSON(c, http.StatusUnauthorized, "Invalid or expired token")
			}
			if u == nil {
				return failJSON(c, http.StatusUnauthorized, "User not found")
			}

			c.Set(userContextKey, u)
			return next(c)
		}
	}
}

// RequireVerifiedEmail aborts with 403 when the authenticated user has not
// verified their email, and with 401 when no user was attached at all. It
// must run after Authenticate.
func RequireVerifiedEmail() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil {
				return failJSON(c, http.StatusUnauthorized, "Unauthorized access")
			}
			if !u.IsEmailVerified {
				return failJSON(c, http.StatusForbidden, "Please verify your email to access this resource")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user attached by Authenticate, or nil.
func CurrentUser(c echo.Context) *model.User {
	if u, ok := c.Get(userContextKey).(*model.User); ok {
		return u
	}
	return nil
}

// failJSON writes the standard error envelope without importing the
// handler package.
func failJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{"success": false, "code": code, "message": message})
}
