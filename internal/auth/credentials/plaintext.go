package credentials

import "crypto/subtle"

// Plaintext stores the secret as-is. It exists to demonstrate the bottom
// of the policy ladder and must never be used outside a classroom.
type Plaintext struct{}

func (Plaintext) Name() string {
	return PolicyPlaintext
}

func (Plaintext) Material(secret string) ([]byte, error) {
	return []byte(secret), nil
}

func (Plaintext) Verify(secret string, material []byte) error {
	if subtle.ConstantTimeCompare([]byte(secret), material) != 1 {
		return ErrMismatch
	}
	return nil
}
