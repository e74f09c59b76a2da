package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateID mints the opaque session token. Its entire authority lives
// in the server-side record it keys, so all that matters here is entropy:
// 256 bits, URL-safe encoded to travel in a cookie.
func GenerateID() (string, error) {

	const size = 32

	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil

}
