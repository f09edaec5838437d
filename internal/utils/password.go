package utils

import "golang.org/x/crypto/bcrypt"

// HashPIN returns the bcrypt hash of a user's PIN using the given cost.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func HashPIN(pin string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
