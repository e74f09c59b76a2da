package users

import "time"

// User is a single account record. Local accounts carry verifier material
// tagged with the policy that produced it; federated accounts carry a
// provider identity and no material.
type User struct {
	ID             string
	Email          string
	Material       []byte
	Policy         string
	Provider       string
	ProviderUserID string
	Secret         string
	CreatedAt      time.Time
}

// Federated reports whether the account was created through a third-party
// sign-in and has no local verifier material.
func (u *User) Federated() bool {
	return u.ProviderUserID != "" && len(u.Material) == 0
}
