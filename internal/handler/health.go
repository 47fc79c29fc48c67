package handler // declare the package name; contains HTTP handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Health reports that the service is up. Load balancers and monitoring
// systems poll it.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Root serves API metadata and the endpoint map.
func Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User Authentication REST API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"health": "GET /api/health",
			"auth": echo.Map{
				"signup":         "POST /api/auth/signup",
				"signin":         "POST /api/auth/signin",
				"forgotPassword": "POST /api/auth/forgot-password",
				"resetPassword":  "POST /api/auth/reset-password",
				"generateOTP":    "POST /api/auth/generate-otp",
				"verifyOTP":      "POST /api/auth/verify-otp",
				"displayPicture": "GET /api/auth/display-picture/:userId",
			},
		},
	})
}
