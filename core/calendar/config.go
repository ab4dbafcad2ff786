package calendar

// Config holds configuration for the target Google Calendar.
type Config struct {
	// CalendarID is the ID of the calendar holding the managed events.
	CalendarID string `mapstructure:"calendar_id" default:"primary"`
	// CredentialsFile is the path to the service account JSON key.
	CredentialsFile string `mapstructure:"credentials_file" default:"credentials.json"`
}
