package credentials

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
)

// AESGCM stores the secret as reversible ciphertext under one process-wide
// key. Compromise of the key compromises every record at once; the policy
// is kept for the encryption rung of the ladder, not as a recommendation.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM builds the policy from a 32-byte key, typically decoded from
// the ENCRYPTION_KEY environment value.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("credentials: aesgcm key must be 32 bytes, got %d", len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("credentials: aesgcm cipher init failed: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("credentials: aesgcm aead init failed: %w", err)
	}

	return &AESGCM{aead: aead}, nil
}

func (*AESGCM) Name() string {
	return PolicyAESGCM
}

// Material seals the secret under a fresh random nonce. The nonce is
// prepended to the ciphertext so the material stays a single opaque blob.
func (a *AESGCM) Material(secret string) ([]byte, error) {
	nonce := make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("credentials: nonce generation failed: %w", err)
	}

	return a.aead.Seal(nonce, nonce, []byte(secret), nil), nil
}

// Verify decrypts the stored material and compares plaintexts. Malformed
// or tampered material fails closed as a mismatch.
func (a *AESGCM) Verify(secret string, material []byte) error {
	if len(material) < a.aead.NonceSize() {
		return ErrMismatch
	}

	nonce, ciphertext := material[:a.aead.NonceSize()], material[a.aead.NonceSize():]

	plaintext, err := a.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return ErrMismatch
	}

	if subtle.ConstantTimeCompare(plaintext, []byte(secret)) != 1 {
		return ErrMismatch
	}
	return nil
}

var _ Verifier = (*AESGCM)(nil)
