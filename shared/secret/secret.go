// Package secret seals holder identifiers so a booking can later prove who
// created it without storing the identifier itself.
package secret

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const Cost = bcrypt.DefaultCost

var (
	ErrEmptySecret = errors.New("secret cannot be empty")
	ErrMismatch    = errors.New("secret does not match")
)

// digest folds the value to a fixed 44 byte string, keeping long holder ids
// under the bcrypt input limit.
func digest(value string) []byte {
	sum := sha256.Sum256([]byte(value))

	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func Seal(value string) (string, error) {
	if value == "" {
		return "", ErrEmptySecret
	}

	sealed, err := bcrypt.GenerateFromPassword(digest(value), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to seal secret: %w", err)
	}

	return string(sealed), nil
}

// Match returns ErrMismatch when value was not the input of sealed.
func Match(value, sealed string) error {
	if value == "" || sealed == "" {
		return ErrMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(sealed), digest(value))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}

	if err != nil {
		return fmt.Errorf("failed to match secret: %w", err)
	}

	return nil
}
