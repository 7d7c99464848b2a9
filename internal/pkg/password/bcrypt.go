// Package password wraps bcrypt behind the PasswordHasher port.
package password

import "golang.org/x/crypto/bcrypt"

// BcryptHasher hashes plaintext passwords with bcrypt. The salt is generated
// per call, so two hashes of the same plaintext never compare equal as
// strings yet both verify.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using the given cost.
// Cost values outside bcrypt's valid range fall back to the default.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. bcrypt's comparison is
// constant-time with respect to the derived key.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
