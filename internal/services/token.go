package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

// editTokenBytes gives 256 bits of entropy; the hex form is 64 characters.
const editTokenBytes = 32

// GenerateEditToken draws a fresh possession token from the platform
// CSPRNG. Generation is pure: uniqueness is the edit_token UNIQUE
// constraint's job, and a collision surfaces as a failed insert.
func GenerateEditToken() (string, error) {
	buf := make([]byte, editTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// TokensEqual compares a presented token against the stored one without
// leaking match length through timing.
func TokensEqual(presented, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(presented), []byte(stored)) == 1
}
