package feed

// Config holds configuration for the schedule feed.
type Config struct {
	// URL is the HTTPS endpoint serving the iCalendar feed.
	URL string `mapstructure:"url" default:""`
	// TimeoutSeconds is the fetch timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
