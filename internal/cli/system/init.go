package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"habbit/internal/cli"
	"habbit/internal/session"
	"habbit/internal/storage"
	"habbit/internal/storage/postgres"
	"habbit/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close before deleting to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habbit storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use the OS keyring or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else {
		// Default to SQLite for file paths
		sourceStore = sqlite.NewStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	ownerID, err := ctx.Session.UserID()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return errors.New("data migration requires an active session, run 'habbit auth login' first")
		}
		return err
	}

	fmt.Println("  Migrating habit templates...")
	templates, err := sourceStore.GetTemplates(ctx.Context, ownerID)
	if err != nil {
		return fmt.Errorf("failed to get templates from source: %w", err)
	}
	for _, tmpl := range templates {
		if err := ctx.Store.CreateTemplate(ctx.Context, tmpl); err != nil {
			return fmt.Errorf("failed to add template %s: %w", tmpl.ID, err)
		}
	}
	fmt.Printf("    Migrated %d templates\n", len(templates))

	fmt.Println("  Migrating completion history...")
	completions, err := sourceStore.GetCompletionsInRange(ctx.Context, ownerID, "0001-01-01", "9999-12-31")
	if err != nil {
		return fmt.Errorf("failed to get completions from source: %w", err)
	}
	for _, comp := range completions {
		if err := ctx.Store.CreateCompletion(ctx.Context, comp); err != nil {
			return fmt.Errorf("failed to add completion %s: %w", comp.ID, err)
		}
	}
	fmt.Printf("    Migrated %d completions\n", len(completions))

	return nil
}
