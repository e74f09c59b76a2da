package credentials

import (
	"crypto/sha256"
	"crypto/subtle"
)

// SHA256 stores an unsalted digest of the secret. Faster to attack than a
// salted slow hash: any precomputed table over the digest space applies to
// every user at once.
type SHA256 struct{}

func (SHA256) Name() string {
	return PolicySHA256
}

func (SHA256) Material(secret string) ([]byte, error) {
	sum := sha256.Sum256([]byte(secret))
	return sum[:], nil
}

func (SHA256) Verify(secret string, material []byte) error {
	sum := sha256.Sum256([]byte(secret))
	if subtle.ConstantTimeCompare(sum[:], material) != 1 {
		return ErrMismatch
	}
	return nil
}
