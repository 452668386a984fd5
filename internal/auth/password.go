package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Registration hashes at a higher cost than routine password changes,
// matching the original system's behavior.
const (
	RegisterCost       = 12
	ChangePasswordCost = 10
)

// HashPassword hashes a plain text password using bcrypt at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a plain text password matches the hashed password.
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
