package main

import (
	"os"
	"path/filepath"
	"testing"

	"habbit/internal/constants"
)

func TestResolveConfig(t *testing.T) {
	t.Run("explicit connection string passes through", func(t *testing.T) {
		got := resolveConfig("postgres://user@localhost:5432/habbit")
		if got != "postgres://user@localhost:5432/habbit" {
			t.Errorf("resolveConfig = %q, want connection string unchanged", got)
		}
	})

	t.Run("expands home-relative paths", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}
		got := resolveConfig("~/data/habbit.db")
		want := filepath.Join(home, "data", "habbit.db")
		if got != want {
			t.Errorf("resolveConfig = %q, want %q", got, want)
		}
	})

	t.Run("environment overrides default location", func(t *testing.T) {
		t.Setenv(constants.EnvDBConnection, "postgres://user@db.internal:5432/habbit")
		got := resolveConfig(constants.DefaultConfigPath)
		if got != "postgres://user@db.internal:5432/habbit" {
			t.Errorf("resolveConfig = %q, want environment connection string", got)
		}
	})

	t.Run("environment ignored for explicit paths", func(t *testing.T) {
		t.Setenv(constants.EnvDBConnection, "postgres://user@db.internal:5432/habbit")
		got := resolveConfig("/tmp/elsewhere.db")
		if got != "/tmp/elsewhere.db" {
			t.Errorf("resolveConfig = %q, want explicit path unchanged", got)
		}
	})
}
