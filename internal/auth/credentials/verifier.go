package credentials

import (
	"errors"
	"fmt"
)

// Policy names, ranked weakest to strongest as the stored-material shape
// changes: cleartext, unsalted digest, salted slow hash, reversible
// ciphertext, and session-manager-owned hashing.
const (
	PolicyPlaintext = "plaintext"
	PolicySHA256    = "sha256"
	PolicyBcrypt    = "bcrypt"
	PolicyAESGCM    = "aesgcm"
	PolicyDelegated = "delegated"
)

var ErrMismatch = errors.New("credentials: secret does not match stored material")

// Verifier is one password-storage policy. Material is computed once at
// registration and immutable afterwards; Verify decides whether a
// submitted secret matches it.
type Verifier interface {
	Name() string
	Material(secret string) ([]byte, error)
	Verify(secret string, material []byte) error
}

// New builds the verifier for the named policy. The key is only consulted
// by the aesgcm policy. The delegated policy lives with the session
// manager and is wired by the caller, not here.
func New(policy string, key []byte) (Verifier, error) {
	switch policy {
	case PolicyPlaintext:
		return Plaintext{}, nil
	case PolicySHA256:
		return SHA256{}, nil
	case PolicyBcrypt:
		return Bcrypt{}, nil
	case PolicyAESGCM:
		return NewAESGCM(key)
	default:
		return nil, fmt.Errorf("credentials: unknown verifier policy %q", policy)
	}
}
