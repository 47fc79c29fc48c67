package utils // package utils provides helpers for token creation, OTP generation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthToken represents a signed JWT session token along with its expiry.
// A token is minted only after a fresh signup or a completed OTP
// verification. There is no revocation store: a minted token stays valid
// until its embedded expiry.
type AuthToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// ErrTokenInvalid is returned by ParseAuthToken for any signature, format
// or expiry failure. Callers never learn which check failed.
var ErrTokenInvalid = errors.New("invalid or expired token")

// NewAuthToken builds and signs an HS256 JWT asserting the given user
// identity. Claims are sub (user id), iat and exp.
func NewAuthToken(secret, userID string, ttl time.Duration) (AuthToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: signed, Exp: exp}, nil
}

// ParseAuthToken verifies the signature and expiry of a session token and
// returns the user id from the sub claim. The signing method is pinned to
// HMAC so tokens signed with a different algorithm are rejected.
func ParseAuthToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrTokenInvalid
	}
	return sub, nil
}
