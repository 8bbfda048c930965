package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

const saltBytes = 32

// HashPassword derives fresh password material: a random salt and the
// HMAC-SHA-512 of the password keyed with that salt. Because the salt is
// new on every call, two accounts with the same password never share a
// hash. Both values are returned hex-encoded for storage.
func HashPassword(password string) (hash, salt string, err error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(keyedHash(raw, password)), hex.EncodeToString(raw), nil
}

// VerifyPassword recomputes the keyed hash for the candidate password and
// compares it against the stored hash in constant time over the full
// digest, so the comparison leaks nothing about where a mismatch occurs.
func VerifyPassword(password, storedHash, storedSalt string) bool {
	salt, err := hex.DecodeString(storedSalt)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(storedHash)
	if err != nil {
		return false
	}
	return hmac.Equal(keyedHash(salt, password), expected)
}

func keyedHash(salt []byte, password string) []byte {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil)
}
