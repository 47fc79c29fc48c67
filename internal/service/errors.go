package service

import "errors"

// Sentinel errors forming the auth failure taxonomy. Handlers compare with
// errors.Is and map each kind to a fixed HTTP status; the messages are safe
// to return to clients verbatim.
var (
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so signin
	// cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrUserNotFound = errors.New("user not found")
	ErrOTPNotFound  = errors.New("no OTP found for this user")
	ErrOTPExpired   = errors.New("OTP has expired")
	ErrInvalidOTP   = errors.New("invalid OTP")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrEmailSend    = errors.New("failed to send email")
)
