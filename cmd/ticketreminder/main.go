package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/the-moog/trac-ticketreminder/internal/cli"
	"github.com/the-moog/trac-ticketreminder/internal/cli/perms"
	"github.com/the-moog/trac-ticketreminder/internal/cli/reminders"
	"github.com/the-moog/trac-ticketreminder/internal/cli/system"
	"github.com/the-moog/trac-ticketreminder/internal/constants"
	"github.com/the-moog/trac-ticketreminder/internal/errors"
	"github.com/the-moog/trac-ticketreminder/internal/keyring"
	"github.com/the-moog/trac-ticketreminder/internal/logger"
	"github.com/the-moog/trac-ticketreminder/internal/storage"
	"github.com/the-moog/trac-ticketreminder/internal/storage/postgres"
	"github.com/the-moog/trac-ticketreminder/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string. Credentials must NOT be embedded; use the environment, .pgpass, or the OS keyring." default:"~/.config/ticketreminder/ticketreminder.db"`
	Actor   string `help:"Acting user; capability grants are resolved for this name." env:"TICKETREMINDER_ACTOR"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize or upgrade the reminder environment."`
	Migrate system.MigrateCmd `cmd:"" help:"Apply pending schema migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`

	Add    reminders.AddCmd    `cmd:"" help:"Attach a reminder to a ticket."`
	List   reminders.ListCmd   `cmd:"" help:"Show pending reminders on a ticket."`
	Delete reminders.DeleteCmd `cmd:"" help:"Delete a reminder."`

	Perm struct {
		Grant  perms.GrantCmd  `cmd:"" help:"Grant a capability action to a user."`
		Revoke perms.RevokeCmd `cmd:"" help:"Revoke a capability action from a user."`
		List   perms.ListCmd   `cmd:"" help:"List a user's capability actions."`
	} `cmd:"" help:"Manage capability grants."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	} `cmd:"" help:"Manage the connection string in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Time-triggered reminders for tickets"),
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
		if storage.HasEmbeddedCredentials(config) {
			fmt.Fprintln(os.Stderr, "Error: PostgreSQL connection strings with embedded credentials are not allowed.")
			fmt.Fprintln(os.Stderr, "       Provide credentials via the environment, .pgpass, or the OS keyring.")
			os.Exit(1)
		}
		store = postgres.NewStore(config)
	} else {
		store = sqlite.NewStore(config)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	err := ctx.Run(&cli.Context{
		Store: store,
		Actor: resolveActor(CLI.Actor),
	})
	errors.Fatal(err)
}

// resolveConfig expands ~ in file paths and falls back to an environment
// variable or the OS keyring for a PostgreSQL connection string. Precedence:
// explicit --config, then TICKETREMINDER_DB_CONNECTION, then the keyring,
// then the default path.
func resolveConfig(config string) string {
	if config == constants.DefaultConfigPath {
		if connStr := os.Getenv("TICKETREMINDER_DB_CONNECTION"); connStr != "" {
			return connStr
		}
		if connStr, err := keyring.GetConnectionString(); err == nil {
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
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		return filepath.Join(home, ".config", constants.AppName)
	}
	return filepath.Dir(config)
}

func resolveActor(actor string) string {
	if actor != "" {
		return actor
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return constants.AnonymousAuthor
}
