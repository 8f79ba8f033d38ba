package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IsLegacyHash reports whether stored looks like the legacy "salt$hash"
// format: a hex salt and a single-round SHA-256 digest separated by '$'.
// Bcrypt hashes start with "$2" and never match.
func IsLegacyHash(stored string) bool {
	if strings.HasPrefix(stored, "$2") {
		return false
	}
	salt, digest, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	return isHex(salt) && isHex(digest) && len(digest) == 64
}

// VerifyLegacyPassword checks plain against a legacy "salt$hash" value.
// Callers that get a match must re-hash with bcrypt and persist the new
// value; the legacy scheme is unsalted-iteration SHA-256 and survives
// only to let old accounts migrate on their next login.
func VerifyLegacyPassword(stored, plain string) bool {
	salt, digest, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	sum := sha256.Sum256([]byte(plain + salt))
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(digest)) == 1
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
