package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomString returns the given number of crypto-rand bytes as an
// unpadded URL-safe string. The OAuth state and PKCE cookies are built
// from it.
func RandomString(bytes int) string {
	b := make([]byte, bytes)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
