// Package router defines how HTTP routes are registered for the API.
// Every route is declared exactly once, through a helper that both mounts
// the handler on Echo and records the method in the static route table
// used for 405 detection.
package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/middleware"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth      *handler.AuthHandler
	Verifier  middleware.TokenVerifier
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
}

// RegisterRoutes mounts all routes and middleware on the Echo instance and
// returns the route table built from the same declarations. The caller
// installs the table's error handler afterwards.
func RegisterRoutes(e *echo.Echo, d Deps) *RouteTable {
	t := NewRouteTable()
	add := func(method, path string, h echo.HandlerFunc, mw ...echo.MiddlewareFunc) {
		e.Add(method, path, h, mw...)
		t.Add(method, path)
	}

	// Stricter per-route limiters on top of the general one, mirroring
	// the abuse profile of each endpoint: credential guessing, OTP
	// flooding and reset-mail flooding.
	authLimit := middleware.RateLimit(d.RateLimit.Profile("auth", 5, 15*time.Minute), d.Redis)
	otpLimit := middleware.RateLimit(d.RateLimit.Profile("otp", 3, 15*time.Minute), d.Redis)
	resetLimit := middleware.RateLimit(d.RateLimit.Profile("pwreset", 3, time.Hour), d.Redis)

	add(http.MethodGet, "/", handler.Root)
	add(http.MethodGet, "/api/health", handler.Health)

	add(http.MethodPost, "/api/auth/signup", d.Auth.Signup, authLimit)
	add(http.MethodPost, "/api/auth/signin", d.Auth.Signin, authLimit)
	add(http.MethodPost, "/api/auth/forgot-password", d.Auth.ForgotPassword, resetLimit)
	add(http.MethodPost, "/api/auth/reset-password", d.Auth.ResetPassword, resetLimit)
	add(http.MethodPost, "/api/auth/generate-otp", d.Auth.GenerateOTP, otpLimit)
	add(http.MethodPost, "/api/auth/verify-otp", d.Auth.VerifyOTP, otpLimit)
	add(http.MethodGet, "/api/auth/display-picture/:userId", d.Auth.DisplayPicture)

	// The one gated route: requires a bearer token and a verified email.
	add(http.MethodGet, "/api/auth/me", d.Auth.Me,
		middleware.Authenticate(d.Verifier), middleware.RequireVerifiedEmail())

	return t
}
