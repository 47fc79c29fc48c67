package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// ErrorHandler returns the Echo HTTPErrorHandler for the API. It owns
// three jobs: deciding between 404 and 405 using the static route table,
// remapping a small set of persistence and token error shapes, and
// wrapping everything else in the standard envelope.
func ErrorHandler(t *RouteTable) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		req := c.Request()

		var he *echo.HTTPError
		isHTTP := errors.As(err, &he)

		if isHTTP && (he.Code == http.StatusNotFound || he.Code == http.StatusMethodNotAllowed) {
			matched, allowed := t.Permits(req.URL.Path, req.Method)
			if matched && !allowed {
				methods, _ := t.Allowed(req.URL.Path)
				allow := strings.Join(methods, ", ")
				c.Response().Header().Set(echo.HeaderAllow, allow)
				_ = handler.Fail(c, http.StatusMethodNotAllowed,
					fmt.Sprintf("Method %s not allowed for this endpoint. Use one of: %s", req.Method, allow),
					echo.Map{"error": "MethodNotAllowed", "allowed": methods})
				return
			}
			_ = handler.Fail(c, http.StatusNotFound,
				fmt.Sprintf("Route %s not found", req.URL.Path))
			return
		}

		// Known error shapes from the persistence and token layers that
		// escaped a handler.
		switch {
		case mongo.IsDuplicateKeyError(err):
			_ = handler.Fail(c, http.StatusBadRequest, "email already exists")
			return
		case errors.Is(err, repository.ErrBadID):
			_ = handler.Fail(c, http.StatusBadRequest, "Invalid ID format")
			return
		case errors.Is(err, utils.ErrTokenInvalid):
			_ = handler.Fail(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		code := http.StatusInternalServerError
		msg := "Internal server error"
		if isHTTP {
			code = he.Code
			if s, ok := he.Message.(string); ok && s != "" {
				msg = s
			}
		}
		if code >= http.StatusInternalServerError {
			c.Logger().Error(err)
		}
		_ = handler.Fail(c, code, msg)
	}
}
