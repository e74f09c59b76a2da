package credentials

import "golang.org/x/crypto/bcrypt"

// Bcrypt stores a salted slow hash. The salt is embedded in the hash and
// comparison goes through the library's own comparator.
type Bcrypt struct{}

func (Bcrypt) Name() string {
	return PolicyBcrypt
}

func (Bcrypt) Material(secret string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
}

func (Bcrypt) Verify(secret string, material []byte) error {
	if err := bcrypt.CompareHashAndPassword(material, []byte(secret)); err != nil {
		return ErrMismatch
	}
	return nil
}
