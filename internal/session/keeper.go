package session

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Keeper is the delegated credential policy: under it the session
// manager's package, not the credentials package, owns hashing, salting
// and comparison, the way a session plugin does in frameworks that bundle
// the two. The identity's serialization into and out of the session record
// already lives here (see Manager and Store), which is the other half of
// the delegation.
type Keeper struct{}

func NewKeeper() *Keeper {
	return &Keeper{}
}

func (*Keeper) Name() string {
	return "delegated"
}

func (*Keeper) Material(secret string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
}

func (*Keeper) Verify(secret string, material []byte) error {
	if err := bcrypt.CompareHashAndPassword(material, []byte(secret)); err != nil {
		return errors.New("session: secret does not match stored material")
	}
	return nil
}
