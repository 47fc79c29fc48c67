package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/middleware"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/service"
)

// maxPictureBytes caps uploaded display pictures at 10MB.
const maxPictureBytes = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// AuthAPI is the slice of the auth service the HTTP layer calls.
// *service.AuthService satisfies it; handler tests substitute a fake.
type AuthAPI interface {
	Signup(ctx context.Context, in service.SignupInput) (*model.User, string, error)
	Signin(ctx context.Context, email, password string) (*service.SigninResult, error)
	VerifyOTP(ctx context.Context, userID, otp string) (*model.User, string, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	GenerateOTP(ctx context.Context, email string) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthHandler adapts HTTP requests to the auth service and maps service
// errors to status codes.
type AuthHandler struct {
	Svc       AuthAPI
	BaseURL   string
	ReturnOTP bool // echo the signin OTP in the response (dev only)
}

func NewAuthHandler(svc AuthAPI, baseURL string, returnOTP bool) *AuthHandler {
	return &AuthHandler{Svc: svc, BaseURL: baseURL, ReturnOTP: returnOTP}
}

// ----- DTOs -----

type signupReq struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	Country  string `json:"country" form:"country"`
}

type signinReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type emailReq struct {
	Email string `json:"email"`
}

type resetPasswordReq struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type verifyOTPReq struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

type authUserResp struct {
	User  model.PublicUser `json:"user"`
	Token string           `json:"token"`
}

// Signup registers a new user. The body is JSON, or multipart form data
// when a display picture is attached under the `displayPicture` field.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Please provide all required fields")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if msgs := collect(
		checkName(req.Name),
		checkEmail(req.Email),
		checkPassword(req.Password),
		checkPhone(req.Phone),
		checkAddress(req.Address),
		checkCountry(req.Country),
	); len(msgs) > 0 {
		return Fail(c, http.StatusBadRequest, "Validation failed", msgs)
	}

	pic, err := h.readDisplayPicture(c)
	if err != nil {
		return Fail(c, http.StatusBadRequest, err.Error())
	}

	u, token, err := h.Svc.Signup(c.Request().Context(), service.SignupInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          strings.TrimSpace(req.Phone),
		Address:        strings.TrimSpace(req.Address),
		Country:        strings.TrimSpace(req.Country),
		DisplayPicture: pic,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			return Fail(c, http.StatusBadRequest, err.Error())
		}
		return Fail(c, http.StatusBadRequest, "Failed to register user")
	}

	return OK(c, http.StatusCreated,
		"User registered successfully. Please verify your email with the OTP sent.",
		authUserResp{User: u.Public(h.BaseURL), Token: token})
}

// Signin verifies credentials and issues a login OTP instead of an
// immediate session token.
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Please provide email and password")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return Fail(c, http.StatusBadRequest, "Please provide email and password")
	}

	res, err := h.Svc.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return Fail(c, http.StatusUnauthorized, err.Error())
		}
		return Fail(c, http.StatusUnauthorized, "Authentication failed")
	}

	data := echo.Map{"userId": res.UserID}
	if h.ReturnOTP {
		data["otp"] = res.OTP
	}
	return OK(c, http.StatusOK,
		"OTP generated successfully. Please verify to complete login.", data)
}

// ForgotPassword requests a password-reset email. The response is the same
// generic message whether or not the account exists.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req emailReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Email is required")
	}
	if msg := checkEmail(req.Email); msg != "" {
		return Fail(c, http.StatusBadRequest, msg)
	}

	if err := h.Svc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return Fail(c, http.StatusInternalServerError, "Failed to process password reset request")
	}
	return OK(c, http.StatusOK, "If the email exists, a password reset link has been sent", nil)
}

// ResetPassword completes a password reset with an emailed token.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Please provide all required fields")
	}
	if req.Token == "" {
		return Fail(c, http.StatusBadRequest, "Token is required")
	}
	if msg := checkPassword(req.NewPassword); msg != "" {
		return Fail(c, http.StatusBadRequest, msg)
	}

	if err := h.Svc.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return Fail(c, http.StatusBadRequest, err.Error())
		}
		return Fail(c, http.StatusBadRequest, "Failed to reset password")
	}
	return OK(c, http.StatusOK, "Password reset successfully", nil)
}

// GenerateOTP regenerates and emails an OTP for a known account.
func (h *AuthHandler) GenerateOTP(c echo.Context) error {
	var req emailReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Email is required")
	}
	if msg := checkEmail(req.Email); msg != "" {
		return Fail(c, http.StatusBadRequest, msg)
	}

	if err := h.Svc.GenerateOTP(c.Request().Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrEmailSend):
			return Fail(c, http.StatusBadRequest, err.Error())
		}
		return Fail(c, http.StatusBadRequest, "Failed to generate OTP")
	}
	return OK(c, http.StatusOK, "OTP sent to your email", nil)
}

// VerifyOTP consumes a pending OTP and completes the login (or email
// verification), returning a fresh session token.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPReq
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Please provide all required fields")
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return Fail(c, http.StatusBadRequest, "User ID is required")
	}
	if msg := checkOTP(req.OTP); msg != "" {
		return Fail(c, http.StatusBadRequest, msg)
	}

	u, token, err := h.Svc.VerifyOTP(c.Request().Context(), req.UserID, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrOTPNotFound),
			errors.Is(err, service.ErrOTPExpired),
			errors.Is(err, service.ErrInvalidOTP):
			return Fail(c, http.StatusBadRequest, err.Error())
		}
		return Fail(c, http.StatusBadRequest, "Failed to verify OTP")
	}

	return OK(c, http.StatusOK, "OTP verified successfully. Login complete.",
		authUserResp{User: u.Public(h.BaseURL), Token: token})
}

// Me returns the authenticated user's own record. The Authenticate and
// RequireVerifiedEmail middleware run before this handler.
func (h *AuthHandler) Me(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return Fail(c, http.StatusUnauthorized, "Unauthorized access")
	}
	return OK(c, http.StatusOK, "Data retrieved successfully", u.Public(h.BaseURL))
}

// DisplayPicture streams a user's stored image with its content type.
func (h *AuthHandler) DisplayPicture(c echo.Context) error {
	userID := c.Param("userId")

	u, err := h.Svc.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		return Fail(c, http.StatusBadRequest, "Failed to retrieve display picture")
	}
	if u == nil || u.DisplayPicture == nil || len(u.DisplayPicture.Data) == 0 {
		return Fail(c, http.StatusNotFound, "Display picture not found")
	}
	return c.Blob(http.StatusOK, u.DisplayPicture.ContentType, u.DisplayPicture.Data)
}

// readDisplayPicture pulls the optional multipart image field. The upload
// must be JPEG or PNG and no larger than 10MB.
func (h *AuthHandler) readDisplayPicture(c echo.Context) (*model.DisplayPicture, error) {
	fh, err := c.FormFile("displayPicture")
	if err != nil {
		// Absent field or non-multipart body: no picture.
		return nil, nil
	}
	if fh.Size > maxPictureBytes {
		return nil, errors.New("Display picture must not exceed 10MB")
	}
	ctype := fh.Header.Get("Content-Type")
	if !allowedImageTypes[ctype] {
		return nil, errors.New("Display picture must be JPG, JPEG, or PNG only")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("File upload failed")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPictureBytes+1))
	if err != nil {
		return nil, errors.New("File upload failed")
	}
	if len(data) > maxPictureBytes {
		return nil, errors.New("Display picture must not exceed 10MB")
	}
	return &model.DisplayPicture{Data: data, ContentType: ctype}, nil
}
