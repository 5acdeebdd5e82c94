package auth

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is a bcrypt hash of random bytes generated at startup, compared
// against when the username does not resolve so that unknown-user and
// wrong-password failures cost the same. No guessable input hashes to it.
var dummyHash = mustDummyHash()

func mustDummyHash() string {
	secret := make([]byte, 24)
	if _, err := rand.Read(secret); err != nil {
		panic(fmt.Sprintf("auth: failed to read random bytes: %v", err))
	}
	hashed, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("auth: failed to hash dummy secret: %v", err))
	}
	return string(hashed)
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// VerifyPassword verifies a password against its stored hash.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// BurnPasswordCheck performs a bcrypt comparison that always fails. Called on
// the unknown-user path of authentication to level its timing with the
// wrong-password path.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
}
