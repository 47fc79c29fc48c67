package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/service"
)

// stubAuth satisfies both handler.AuthAPI and middleware.TokenVerifier so
// one fake can back the whole route tree.
type stubAuth struct {
	user *model.User
}

func (s *stubAuth) Signup(context.Context, service.SignupInput) (*model.User, string, error) {
	return &model.User{ID: primitive.NewObjectID()}, "tok", nil
}

func (s *stubAuth) Signin(context.Context, string, string) (*service.SigninResult, error) {
	return &service.SigninResult{UserID: "u1", OTP: "123456"}, nil
}

func (s *stubAuth) VerifyOTP(context.Context, string, string) (*model.User, string, error) {
	return &model.User{ID: primitive.NewObjectID(), IsEmailVerified: true}, "tok", nil
}

func (s *stubAuth) RequestPasswordReset(context.Context, string) error { return nil }
func (s *stubAuth) ResetPassword(context.Context, string, string) error {
	return nil
}
func (s *stubAuth) GenerateOTP(context.Context, string) error { return nil }

func (s *stubAuth) GetUserByID(context.Context, string) (*model.User, error) {
	return s.user, nil
}

func (s *stubAuth) VerifyToken(string) (string, error) {
	if s.user == nil {
		return "", service.ErrInvalidToken
	}
	return s.user.ID.Hex(), nil
}

// newTestServer wires the full route tree with rate limiting off and no
// Redis, exactly as the server degrades without infrastructure.
func newTestServer(t *testing.T, auth *stubAuth) *echo.Echo {
	t.Helper()
	e := echo.New()
	tbl := RegisterRoutes(e, Deps{
		Auth:      handler.NewAuthHandler(auth, "http://localhost:5000", false),
		Verifier:  auth,
		RateLimit: config.RateLimitConfig{Enabled: false},
		Redis:     nil,
	})
	e.HTTPErrorHandler = ErrorHandler(tbl)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWrongMethodGets405WithAllowHeader(t *testing.T) {
	e := newTestServer(t, &stubAuth{})

	rec := do(e, http.MethodDelete, "/api/auth/signup", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get(echo.HeaderAllow))

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Method DELETE not allowed for this endpoint. Use one of: POST", body["message"])
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, "MethodNotAllowed", errObj["error"])
	assert.Equal(t, []interface{}{"POST"}, errObj["allowed"])
}

func TestWrongMethodOnGetRoute(t *testing.T) {
	e := newTestServer(t, &stubAuth{})

	rec := do(e, http.MethodPost, "/api/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get(echo.HeaderAllow))
}

func TestWrongMethodOnParamRoute(t *testing.T) {
	e := newTestServer(t, &stubAuth{})

	rec := do(e, http.MethodPost, "/api/auth/display-picture/665f1c2e9d3a4b0012345678", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET", rec.Header().Get(echo.HeaderAllow))
}

func TestUnknownRouteGets404(t *testing.T) {
	e := newTestServer(t, &stubAuth{})

	rec := do(e, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route /api/nope not found", body["message"])
}

func TestRegisteredRoutesAreServed(t *testing.T) {
	e := newTestServer(t, &stubAuth{})

	rec := do(e, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPost, "/api/auth/signin",
		`{"email":"jane@example.com","password":"abc123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMeRouteIsGated(t *testing.T) {
	// Without a token the gated route answers 401, not 404.
	e := newTestServer(t, &stubAuth{})
	rec := do(e, http.MethodGet, "/api/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// An unverified account is blocked with 403.
	unverified := &stubAuth{user: &model.User{ID: primitive.NewObjectID()}}
	e = newTestServer(t, unverified)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A verified account gets its own record.
	verified := &stubAuth{user: &model.User{ID: primitive.NewObjectID(), Email: "jane@example.com", IsEmailVerified: true}}
	e = newTestServer(t, verified)
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "jane@example.com", data["email"])
}
