package constants

const (
	AppName            = "ticketreminder"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/ticketreminder/ticketreminder.db"
	Version            = "v1.0.0"

	// DateFormat is the canonical date format accepted and redisplayed for
	// date-mode reminders (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DateTimeFormat is used when showing absolute due instants
	DateTimeFormat = "2006-01-02 15:04"

	// SchemaName is the key under which the installed schema version is
	// recorded in the system table
	SchemaName = "ticketreminder_version"

	// SchemaVersion is the schema version this build targets
	SchemaVersion = 1

	// AnonymousAuthor is recorded when no acting user can be resolved
	AnonymousAuthor = "anonymous"
)

// Capability actions. TicketView and TicketAdmin are defined by the host
// tracker; the two reminder actions are registered by this component.
const (
	CapTicketView     = "TICKET_VIEW"
	CapTicketAdmin    = "TICKET_ADMIN"
	CapReminderView   = "TICKET_REMINDER_VIEW"
	CapReminderModify = "TICKET_REMINDER_MODIFY"
)
