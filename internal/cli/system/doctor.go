package system

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"habbit/internal/cli"
	"habbit/internal/constants"
	"habbit/internal/keyring"
	"habbit/internal/migration"
	"habbit/internal/session"
	"habbit/internal/storage/sqlite"
	"habbit/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Migrations complete (only if DB is reachable)
	if dbReachable {
		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 4: Keyring availability (warning only, sqlite works without it)
	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   keyring is not available; sessions and stored connection strings will not work\n")
	}

	// Check 5: Active session (warning only)
	if err := checkSession(ctx); err != nil {
		fmt.Printf("⚠ Active session: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Active session: OK\n")
	}

	// Check 6: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 7: Completion integrity (only if DB is reachable)
	if dbReachable {
		if err := checkCompletionIntegrity(ctx); err != nil {
			fmt.Printf("❌ Completion integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Completion integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Completion integrity: SKIPPED (database not reachable)\n")
	}

	// Check 8: Concurrent instances (warning only)
	if err := checkOtherInstances(); err != nil {
		fmt.Printf("⚠ Concurrent instances: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent instances: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := sqliteRunner(ctx)
	if err != nil || runner == nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := sqliteRunner(ctx)
	if err != nil || runner == nil {
		return err
	}

	currentVersion, err := runner.CurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	files, err := runner.ReadMigrationFiles()
	if err != nil {
		return fmt.Errorf("failed to read migration files: %w", err)
	}

	latestVersion := 0
	for _, m := range files {
		if m.Version > latestVersion {
			latestVersion = m.Version
		}
	}

	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d. Run 'habbit migrate'", currentVersion, latestVersion)
	}

	return nil
}

// sqliteRunner returns a migration runner for SQLite stores, or nil when the
// store is PostgreSQL (migrations are applied there on Init).
func sqliteRunner(ctx *cli.Context) (*migration.Runner, error) {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil, nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return migration.NewRunner(db, subFS), nil
}

func checkSession(ctx *cli.Context) error {
	_, err := ctx.Session.UserID()
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return fmt.Errorf("no active session - sign in with 'habbit auth login'")
		}
		return fmt.Errorf("failed to read session: %w", err)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	// Reasonable range check catches dead CMOS batteries and unset clocks
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	if _, offset := now.Zone(); offset < -14*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone offset out of range: %d seconds", offset)
	}

	return nil
}

func checkCompletionIntegrity(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	// Orphaned completions reference templates that no longer exist
	var orphanedCount int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM habit_completions c
		LEFT JOIN habit_templates t ON c.template_id = t.id
		WHERE t.id IS NULL
	`).Scan(&orphanedCount)
	if err != nil {
		return fmt.Errorf("failed to check orphaned completions: %w", err)
	}
	if orphanedCount > 0 {
		return fmt.Errorf("found %d completion(s) referencing deleted templates", orphanedCount)
	}

	var badDateCount int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM habit_completions
		WHERE completed_date NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'
	`).Scan(&badDateCount)
	if err != nil {
		return fmt.Errorf("failed to check completion dates: %w", err)
	}
	if badDateCount > 0 {
		return fmt.Errorf("found %d completion(s) with malformed dates", badDateCount)
	}

	return nil
}

// checkOtherInstances looks for other running habbit processes. SQLite allows
// only one writer, so a second instance can cause lock contention.
func checkOtherInstances() error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	others := 0
	for _, p := range processes {
		if p.Pid() == self {
			continue
		}
		name := strings.TrimSuffix(p.Executable(), ".exe")
		if name == constants.AppName {
			others++
		}
	}

	if others > 0 {
		return fmt.Errorf("found %d other running %s instance(s); concurrent writes may fail", others, constants.AppName)
	}

	return nil
}
