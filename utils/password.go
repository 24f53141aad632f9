package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateSecurePassword creates a random URL-safe password of the specified length
func GenerateSecurePassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	// base64 yields 4 characters per 3 bytes, so length bytes are always enough
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	password := base64.RawURLEncoding.EncodeToString(b)
	return password[:length], nil
}
