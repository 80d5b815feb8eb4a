// Package session resolves the owner id that scopes all habit data.
package session

import (
	"errors"
	"fmt"

	"habbit/internal/keyring"
)

// ErrNoSession is returned when no user is signed in.
var ErrNoSession = errors.New("no active session, run 'habbit auth login' first")

// Provider resolves the current owner id.
type Provider interface {
	UserID() (string, error)
}

// Keyring resolves the owner id from the OS keyring.
type Keyring struct{}

func (Keyring) UserID() (string, error) {
	id, err := keyring.GetSessionUser()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	if id == "" {
		return "", ErrNoSession
	}
	return id, nil
}

// Login stores the owner id as the active session.
func Login(userID string) error {
	if userID == "" {
		return errors.New("user id cannot be empty")
	}
	return keyring.SetSessionUser(userID)
}

// Logout clears the active session. A missing session is not an error.
func Logout() error {
	if err := keyring.DeleteSessionUser(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// Static is a fixed-user provider used in tests and single-user setups.
type Static struct {
	ID string
}

func (s Static) UserID() (string, error) {
	if s.ID == "" {
		return "", ErrNoSession
	}
	return s.ID, nil
}
