package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// GenerateSecretKey returns length random bytes, URL-safe base64 encoded,
// suitable for SECRET_KEY.
func GenerateSecretKey(length int) (string, error) {
	if length < 16 {
		return "", errors.New("secret key must be at least 16 bytes")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
