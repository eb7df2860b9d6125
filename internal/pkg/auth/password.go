package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the default hashing cost
const BcryptCost = 12

// PasswordHasher hashes and verifies credentials with bcrypt
type PasswordHasher struct {
	Cost int
}

// NewPasswordHasher creates a hasher; a cost outside bcrypt's range falls back to BcryptCost
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = BcryptCost
	}
	return PasswordHasher{Cost: cost}
}

// Hash returns the bcrypt hash of password
func (h PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Check reports whether password matches hashedPassword
func (h PasswordHasher) Check(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPassword hashes with the default cost
func HashPassword(password string) (string, error) {
	return NewPasswordHasher(BcryptCost).Hash(password)
}

// CheckPassword verifies a password against its hash
func CheckPassword(hashedPassword, password string) bool {
	return PasswordHasher{}.Check(hashedPassword, password)
}
