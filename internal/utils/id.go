package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// OAuthStateBytes is the entropy for OAuth state nonces.
const OAuthStateBytes = 16

// GenerateSecureToken returns length random bytes as a URL-safe base64
// string.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
