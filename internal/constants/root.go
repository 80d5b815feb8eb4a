package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "habbit"
	DefaultKeyringUser = "database-connection"
	SessionKeyringUser = "session-user"
	DefaultConfigPath  = "~/.config/habbit/habbit.db"
	EnvDBConnection    = "HABBIT_DB_CONNECTION"
	Version            = "v0.1.0"

	// DateFormat is the standard calendar-day format used throughout the
	// application (YYYY-MM-DD). Completion dates carry no time component.
	DateFormat = "2006-01-02"

	// DayLabelFormat is the human-readable label for a selected day
	DayLabelFormat = "Monday, Jan 2"

	// MaxTemplateNameLen bounds template names before any remote call
	MaxTemplateNameLen = 80
)

// Session States
const (
	StateWeek SessionState = iota
	StateTemplates
	StateEditTemplate
	StateConfirmDelete
)
