package util

import (
	"golang.org/x/crypto/bcrypt"
)

// Passwords only exist for admin accounts; regular users sign in via VK.
// Cost 12 keeps a single bootstrap hash well under a second while staying
// expensive enough for offline attacks.
const bcryptCost = 12

// HashPassword returns the bcrypt hash of an admin password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
// Any bcrypt error, including a malformed hash, counts as a mismatch.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
