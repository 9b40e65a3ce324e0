package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewResetToken returns an unguessable password reset token: 32 bytes
// of cryptographically secure random data, hex encoded (64 characters).
func NewResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
