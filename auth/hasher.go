package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type (
	// Hasher wraps bcrypt so the work factor can be injected, tests
	// run with bcrypt.MinCost instead of paying the full cost on
	// every registration.
	Hasher struct {
		cost int
	}
)

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

func NewHasherWithCost(cost int) *Hasher {
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	buf, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("unable to hash password, cause %w", err)
	}
	return string(buf), nil
}

// Compare reports whether password matches the stored hash.
func (h *Hasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
