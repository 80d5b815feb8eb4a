package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	clipkg "habbit/internal/cli"
	"habbit/internal/cli/system"
	apperrors "habbit/internal/errors"
	"habbit/internal/cli/templates"
	"habbit/internal/constants"
	"habbit/internal/keyring"
	"habbit/internal/logger"
	"habbit/internal/session"
	"habbit/internal/storage"
	"habbit/internal/storage/postgres"
	"habbit/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	Config  string `help:"Database path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring or .pgpass instead." type:"string" default:"~/.config/habbit/habbit.db"`

	Init    system.InitCmd    `cmd:"" help:"Initialize habbit storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage keyring credentials."`
	Auth     clipkg.AuthCmd        `cmd:"" help:"Manage the active session."`
	Template templates.TemplateCmd `cmd:"" help:"Manage habit templates."`
	Today    clipkg.TodayCmd       `cmd:"" help:"Show the habit checklist for a day."`
	Toggle   clipkg.ToggleCmd      `cmd:"" help:"Toggle a habit's completion for a day."`
	Week     clipkg.WeekCmd        `cmd:"" help:"Show completion counts for a week."`
}

// commands that manage storage or credentials themselves and must not
// fail when the database does not exist yet
var skipLoad = map[string]bool{
	"init":    true,
	"keyring": true,
	"auth":    true,
	"doctor":  true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habbit"),
		kong.Description("Date-indexed habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := resolveConfig(CLI.Config)

	var store storage.Provider
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				fmt.Fprintf(os.Stderr, "❌ Error: PostgreSQL connection strings with embedded credentials are NOT allowed.\n")
				fmt.Fprintf(os.Stderr, "       Use one of these secure alternatives:\n")
				fmt.Fprintf(os.Stderr, "       1. OS keyring:    habbit keyring set \"postgresql://user@host:5432/habbit\"\n")
				fmt.Fprintf(os.Stderr, "       2. .pgpass file:  Use connection string without password\n")
				fmt.Fprintf(os.Stderr, "       3. Environment:   export %s=\"postgresql://user@host:5432/habbit\"\n", constants.EnvDBConnection)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Error: invalid connection string: %v\n", err)
			os.Exit(1)
		}
		store = postgres.New(config)
	} else {
		store = sqlite.NewStore(config)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	appCtx := &clipkg.Context{
		Context: context.Background(),
		Store:   store,
		Session: session.Keyring{},
	}

	// Load the store before running the command (skipLoad commands handle
	// their own loading or don't need the database)
	cmdRoot := strings.Fields(ctx.Command())[0]
	if !skipLoad[cmdRoot] && cmdRoot != "tui" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// resolveConfig applies the HABBIT_DB_CONNECTION and keyring
// connection-string fallbacks and expands ~ in file paths. The fallbacks are
// consulted only when the user did not override the default config location.
func resolveConfig(config string) string {
	if config == constants.DefaultConfigPath {
		if connStr := os.Getenv(constants.EnvDBConnection); connStr != "" {
			return connStr
		}
		if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
			return connStr
		}
	}

	if strings.HasPrefix(config, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, config[2:])
		}
	}
	return config
}

func configDir(config string) string {
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config", constants.AppName)
		}
		return "."
	}
	return filepath.Dir(config)
}
