package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt cost used for API key secrets
	DefaultCost = 12

	keyPrefixLen = 8
	keySecretLen = 24
)

// GenerateAPIKey produces a reseller API key of the form
// "rk_<prefix>_<secret>". The prefix is stored in clear for lookup, the
// secret only as a bcrypt hash.
func GenerateAPIKey() (full, prefix, secret string, err error) {
	raw := make([]byte, keyPrefixLen/2+keySecretLen/2)
	if _, err = rand.Read(raw); err != nil {
		return "", "", "", fmt.Errorf("failed to generate api key: %w", err)
	}
	encoded := hex.EncodeToString(raw)
	prefix = encoded[:keyPrefixLen]
	secret = encoded[keyPrefixLen:]
	return "rk_" + prefix + "_" + secret, prefix, secret, nil
}

// SplitAPIKey splits a presented key back into prefix and secret.
func SplitAPIKey(full string) (prefix, secret string, ok bool) {
	parts := strings.SplitN(full, "_", 3)
	if len(parts) != 3 || parts[0] != "rk" || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// HashSecret hashes an API key secret using bcrypt
func HashSecret(secret string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(secret), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(bytes), nil
}

// CheckSecret compares a presented secret with its stored hash
func CheckSecret(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}
