package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateOTP returns a one-time passcode of exactly 6 decimal digits,
// drawn uniformly from [0, 999999] and zero-padded. The code is compared
// as a fixed-width string, never as a number.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// NewResetToken returns a high-entropy opaque token for password resets:
// 32 bytes of cryptographically secure random data as lowercase hex.
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
