package storage

import (
	"database/sql"
	"errors"
	"net/url"
	"strings"

	"github.com/the-moog/trac-ticketreminder/internal/migration"
	"github.com/the-moog/trac-ticketreminder/internal/models"
)

// ErrNotFound is returned by point lookups and deletes that matched no row.
// Callers distinguish it from store failures so a stale delete surfaces as a
// warning, not a crash.
var ErrNotFound = errors.New("reminder not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Reminders
	// ListPending returns the ticket's not-yet-fired reminders ordered by
	// ascending due time. Each call is a fresh snapshot.
	ListPending(ticket int64) ([]models.Reminder, error)
	// InsertReminder persists the reminder and returns it with its assigned id.
	InsertReminder(models.Reminder) (models.Reminder, error)
	GetReminder(id int64) (models.Reminder, error)
	// DeleteReminder removes the row, reporting ErrNotFound if it was absent.
	DeleteReminder(id int64) error

	// Capability grants
	GrantPermission(username, action string) error
	RevokePermission(username, action string) error
	PermissionsFor(username string) ([]string, error)

	// Utils
	GetConfigPath() string
	GetDB() *sql.DB
	Driver() migration.Driver
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Such strings are refused; credentials belong in
// the environment, .pgpass, or the OS keyring.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}

	// DSN key=value form
	for _, field := range strings.Fields(connStr) {
		if strings.HasPrefix(field, "password=") {
			return true
		}
	}
	return false
}
