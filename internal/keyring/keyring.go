package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	serviceName = "simplecalorie"
	keyUser     = "gemini-api-key"
)

var (
	// ErrNotFound is returned when no API key is stored in the keyring.
	ErrNotFound = errors.New("api key not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetAPIKey retrieves the Gemini API key from the OS keyring. Returns
// ErrNotFound if none is stored; the app then runs in demo mode.
func GetAPIKey() (string, error) {
	key, err := keyring.Get(serviceName, keyUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return key, nil
}

// SetAPIKey stores the Gemini API key in the OS keyring.
func SetAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("api key cannot be empty")
	}
	if err := keyring.Set(serviceName, keyUser, key); err != nil {
		return fmt.Errorf("failed to store api key in keyring: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the Gemini API key from the OS keyring.
func DeleteAPIKey() error {
	err := keyring.Delete(serviceName, keyUser)
	if err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete api key from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring can be reached. Best
// effort: a probe read that finds nothing still proves availability.
func IsAvailable() bool {
	_, err := keyring.Get(serviceName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}
