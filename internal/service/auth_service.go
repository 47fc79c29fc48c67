// Package service owns the authentication state machine: signup with
// email-verification OTP, signin gated by a login OTP, password reset via
// emailed token, and JWT issuance for completed flows.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/notifier"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// UserStore is the slice of the persistence adapter the auth service
// needs. *repository.UserRepo satisfies it; tests substitute a fake.
type UserStore interface {
	Create(ctx context.Context, u *model.User, bcryptCost int) error
	FindByEmail(ctx context.Context, email string, includeSecrets bool) (*model.User, error)
	FindByID(ctx context.Context, id string, includeSecrets bool) (*model.User, error)
	FindByResetToken(ctx context.Context, token string, now time.Time) (*model.User, error)
	SetOTP(ctx context.Context, id primitive.ObjectID, otp string, expires time.Time) error
	ClearOTPAndMarkVerified(ctx context.Context, id primitive.ObjectID) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expires time.Time) error
	ResetPassword(ctx context.Context, id primitive.ObjectID, newPassword string, bcryptCost int) error
}

// Options carries the tunable windows and secrets of the state machine.
type Options struct {
	JWTSecret     string
	JWTExpiresIn  time.Duration
	OTPExpiresIn  time.Duration // email-verification and re-generated OTPs
	SigninOTPTTL  time.Duration // login second-factor OTPs
	ResetTokenTTL time.Duration
	BcryptCost    int
	BaseURL       string // used to build password-reset links
}

// AuthService implements the authentication flows. All collaborators are
// injected at construction; the service holds no global state.
type AuthService struct {
	users UserStore
	mail  notifier.Notifier
	opts  Options
	now   func() time.Time
}

func NewAuthService(users UserStore, mail notifier.Notifier, opts Options) *AuthService {
	return &AuthService{users: users, mail: mail, opts: opts, now: time.Now}
}

// SignupInput is the validated signup request.
type SignupInput struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	Address        string
	Country        string
	DisplayPicture *model.DisplayPicture
}

// Signup registers a new user, stores an email-verification OTP, sends it
// best-effort, and mints a session token. The token is issued even though
// the account is not yet verified; middleware gates unverified accounts
// from sensitive routes.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*model.User, string, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email, false)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailExists
	}

	u := &model.User{
		Name:           in.Name,
		Email:          in.Email,
		Password:       in.Password, // hashed by the store at write time
		Phone:          in.Phone,
		Address:        in.Address,
		Country:        in.Country,
		DisplayPicture: in.DisplayPicture,
	}
	if err := s.users.Create(ctx, u, s.opts.BcryptCost); err != nil {
		// Two signups racing on one email: the unique index decides.
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, "", ErrEmailExists
		}
		return nil, "", err
	}
	u.Password = ""

	otp, expires, err := s.issueOTP(ctx, u.ID, s.opts.OTPExpiresIn)
	if err != nil {
		return nil, "", err
	}
	u.OTP = otp
	u.OTPExpires = &expires

	// Verification mail is best-effort: a flaky transport must not block
	// signup.
	msg := notifier.OTPMessage(otp)
	if err := s.mail.Send(ctx, u.Email, msg.Subject, msg.HTML); err != nil {
		log.Printf("signup: failed to send verification email to %s: %v", u.Email, err)
	}

	tok, err := utils.NewAuthToken(s.opts.JWTSecret, u.ID.Hex(), s.opts.JWTExpiresIn)
	if err != nil {
		return nil, "", err
	}
	return u, tok.Token, nil
}

// SigninResult is returned by Signin. OTP holds the raw code so local
// development can complete the flow without a mail transport; production
// configurations must not expose it to the client.
type SigninResult struct {
	UserID string
	OTP    string
}

// Signin verifies credentials and stores a fresh login OTP. An unknown
// email and a wrong password return the identical ErrInvalidCredentials.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*SigninResult, error) {
	u, err := s.users.FindByEmail(ctx, email, true)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.VerifyPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	otp, _, err := s.issueOTP(ctx, u.ID, s.opts.SigninOTPTTL)
	if err != nil {
		return nil, err
	}

	msg := notifier.OTPMessage(otp)
	if err := s.mail.Send(ctx, u.Email, msg.Subject, msg.HTML); err != nil {
		log.Printf("signin: failed to send OTP email to %s: %v", u.Email, err)
	}

	return &SigninResult{UserID: u.ID.Hex(), OTP: otp}, nil
}

// VerifyOTP consumes a pending OTP. On success the email is marked
// verified, both OTP fields are cleared, a fresh session token is minted
// and a welcome mail goes out best-effort. The stored code is compared as
// an exact string.
func (s *AuthService) VerifyOTP(ctx context.Context, userID, otp string) (*model.User, string, error) {
	u, err := s.users.FindByID(ctx, userID, true)
	if err != nil && !isBadID(err) {
		return nil, "", err
	}
	if u == nil || isBadID(err) {
		return nil, "", ErrUserNotFound
	}
	if u.OTP == "" || u.OTPExpires == nil {
		return nil, "", ErrOTPNotFound
	}
	if u.OTPExpires.Before(s.now()) {
		return nil, "", ErrOTPExpired
	}
	if u.OTP != otp {
		return nil, "", ErrInvalidOTP
	}

	if err := s.users.ClearOTPAndMarkVerified(ctx, u.ID); err != nil {
		return nil, "", err
	}
	u.IsEmailVerified = true
	u.OTP = ""
	u.OTPExpires = nil
	u.Password = ""

	tok, err := utils.NewAuthToken(s.opts.JWTSecret, u.ID.Hex(), s.opts.JWTExpiresIn)
	if err != nil {
		return nil, "", err
	}

	msg := notifier.WelcomeMessage(u.Name)
	if err := s.mail.Send(ctx, u.Email, msg.Subject, msg.HTML); err != nil {
		log.Printf("verify-otp: failed to send welcome email to %s: %v", u.Email, err)
	}
	return u, tok.Token, nil
}

// RequestPasswordReset stores a reset token and emails it. An unknown
// email returns nil without any persistence write, so the endpoint cannot
// reveal whether an account exists. Unlike the OTP mails, a send failure
// here is surfaced: without the mail the token is unreachable and the call
// accomplished nothing.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email, false)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}

	token, err := utils.NewResetToken()
	if err != nil {
		return err
	}
	expires := s.now().Add(s.opts.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, u.ID, token, expires); err != nil {
		return err
	}

	msg := notifier.PasswordResetMessage(s.opts.BaseURL + "/reset-password?token=" + token)
	if err := s.mail.Send(ctx, u.Email, msg.Subject, msg.HTML); err != nil {
		log.Printf("password-reset: failed to send email to %s: %v", u.Email, err)
		return ErrEmailSend
	}
	return nil
}

// ResetPassword exchanges a valid, unexpired reset token for a password
// change. The token pair is cleared in the same write that stores the new
// hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	u, err := s.users.FindByResetToken(ctx, token, s.now())
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidToken
	}
	return s.users.ResetPassword(ctx, u.ID, newPassword, s.opts.BcryptCost)
}

// GenerateOTP regenerates the OTP for a known email using the configurable
// window and emails it. Here a send failure does propagate: the endpoint
// exists solely to get a code into the user's inbox.
func (s *AuthService) GenerateOTP(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(ctx, email, false)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}

	otp, _, err := s.issueOTP(ctx, u.ID, s.opts.OTPExpiresIn)
	if err != nil {
		return err
	}
	msg := notifier.OTPMessage(otp)
	if err := s.mail.Send(ctx, u.Email, msg.Subject, msg.HTML); err != nil {
		log.Printf("generate-otp: failed to send email to %s: %v", u.Email, err)
		return ErrEmailSend
	}
	return nil
}

// GetUserByID is a passthrough lookup. Absence is (nil, nil), not an
// error.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	u, err := s.users.FindByID(ctx, id, false)
	if isBadID(err) {
		return nil, nil
	}
	return u, err
}

// VerifyToken validates a session token and returns the user id claim.
func (s *AuthService) VerifyToken(token string) (string, error) {
	sub, err := utils.ParseAuthToken(s.opts.JWTSecret, token)
	if err != nil {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// issueOTP generates a fresh 6-digit code and persists it with the given
// window. A previously pending code is overwritten: last write wins.
func (s *AuthService) issueOTP(ctx context.Context, id primitive.ObjectID, ttl time.Duration) (string, time.Time, error) {
	otp, err := utils.GenerateOTP()
	if err != nil {
		return "", time.Time{}, err
	}
	expires := s.now().Add(ttl)
	if err := s.users.SetOTP(ctx, id, otp, expires); err != nil {
		return "", time.Time{}, err
	}
	return otp, expires, nil
}

// isBadID reports whether the store rejected a malformed user id. The
// service folds it into "user not found" so malformed ids are
// indistinguishable from unknown ones.
func isBadID(err error) bool {
	return errors.Is(err, repository.ErrBadID)
}
