package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateRandomPassword generates an unguessable placeholder password for
// accounts provisioned through an external identity provider. The user never
// sees it; it only exists so the account satisfies the credential schema.
func GenerateRandomPassword() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateUsernameSuffix generates a short random suffix used to
// de-duplicate usernames derived from display names
func GenerateUsernameSuffix() (string, error) {
	bytes := make([]byte, 2)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
