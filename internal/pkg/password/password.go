// internal/pkg/password/password.go
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the fixed bcrypt work factor for stored credentials.
const Cost = 12

// maxInputBytes is bcrypt's input limit. x/crypto errors on longer input
// instead of silently truncating, so truncation happens here: accepted
// passwords run up to 100 characters.
const maxInputBytes = 72

func truncate(plaintext string) []byte {
	b := []byte(plaintext)
	if len(b) > maxInputBytes {
		b = b[:maxInputBytes]
	}
	return b
}

// Hash applies the salted one-way transform. Output differs per call (the
// salt is embedded), verification is deterministic.
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch is
// false, never an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(plaintext)) == nil
}
