package auth

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores input beyond 72 bytes. Truncating explicitly on both the hash
// and verify paths keeps the two comparisons consistent when a multi-byte
// character straddles the boundary.
const maxPasswordBytes = 72

// HashPassword hashes a plaintext password with the configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(truncatePassword(password)), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(truncatePassword(plain)))
}

// truncatePassword cuts the UTF-8 encoding at maxPasswordBytes, then drops any
// trailing partial rune left by the cut. Best-effort recovery, not an error.
func truncatePassword(password string) string {
	if len(password) <= maxPasswordBytes {
		return password
	}
	truncated := password[:maxPasswordBytes]
	for len(truncated) > 0 && !utf8.ValidString(truncated) {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}
