package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"habbit/internal/constants"
)

var (
	// ErrNotFound is returned when no value is stored under the requested account
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString retrieves the database connection string from the OS keyring.
// Returns ErrNotFound if no credentials are stored.
func GetConnectionString() (string, error) {
	return get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return set(constants.DefaultKeyringUser, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return del(constants.DefaultKeyringUser)
}

// GetSessionUser retrieves the signed-in owner id from the OS keyring.
// Returns ErrNotFound when no session is stored.
func GetSessionUser() (string, error) {
	return get(constants.SessionKeyringUser)
}

// SetSessionUser stores the signed-in owner id in the OS keyring.
func SetSessionUser(userID string) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}
	return set(constants.SessionKeyringUser, userID)
}

// DeleteSessionUser removes the signed-in owner id from the OS keyring.
func DeleteSessionUser() error {
	return del(constants.SessionKeyringUser)
}

// IsAvailable checks if the OS keyring is usable on the current system.
// Best effort: a missing test entry still proves the keyring responds.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || err == keyring.ErrNotFound
}

func get(account string) (string, error) {
	val, err := keyring.Get(constants.AppName, account)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return val, nil
}

func set(account, value string) error {
	if err := keyring.Set(constants.AppName, account, value); err != nil {
		return fmt.Errorf("failed to store value in keyring: %w", err)
	}
	return nil
}

func del(account string) error {
	if err := keyring.Delete(constants.AppName, account); err != nil {
		if err == keyring.ErrNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete value from keyring: %w", err)
	}
	return nil
}
