package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateResetToken returns a URL-safe random token for password resets.
func GenerateResetToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
