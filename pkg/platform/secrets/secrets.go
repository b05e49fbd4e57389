package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"

	dErrors "punchclock/pkg/domain-errors"
)

// PINCost matches the cost the kiosk roster hashes were created with.
const PINCost = 10

// Generate creates a cryptographically secure random secret.
// Returns a base64url string suitable for HMAC keys.
func Generate() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateDigits returns n uniformly random decimal digits.
func GenerateDigits(n int) (string, error) {
	out := make([]byte, n)
	for i := range n {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("could not generate digits: %w", err)
		}
		out[i] = byte('0' + d.Int64())
	}
	return string(out), nil
}

// Hash creates a bcrypt hash of the provided secret.
func Hash(secret string) (string, error) {
	if secret == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), PINCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "secret is too long")
		}
		return "", fmt.Errorf("could not hash secret: %w", err)
	}
	return string(hashed), nil
}

// Matches reports whether secret matches hash. A malformed hash is an error,
// a mismatch is not.
func Matches(secret, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("could not verify secret: %w", err)
	}
}
