package schedule

import "time"

// Config holds configuration for reconciliation runs.
type Config struct {
	// Enabled toggles the schedule feature (HTTP routes and cron runs).
	Enabled bool `mapstructure:"enabled" default:"true"`
	// TitlePrefix marks every managed event title.
	TitlePrefix string `mapstructure:"title_prefix" default:"[Rink] "`
	// IdentityScheme selects the identity digest (fnv64, legacy31).
	IdentityScheme string `mapstructure:"identity_scheme" default:"fnv64"`
	// ToleranceMinutes is the start/end drift ignored by change detection.
	ToleranceMinutes int `mapstructure:"tolerance_minutes" default:"5"`
	// MutationDelayMs is the pause between consecutive calendar calls.
	MutationDelayMs int `mapstructure:"mutation_delay_ms" default:"250"`
	// WindowDays is how far ahead of now the run window extends.
	WindowDays int `mapstructure:"window_days" default:"60"`
	// Cron is the daemon's run schedule (robfig/cron syntax).
	Cron string `mapstructure:"cron" default:"@every 30m"`
}

// Tolerance returns the change detection tolerance as a duration.
func (c Config) Tolerance() time.Duration {
	if c.ToleranceMinutes <= 0 {
		return 0 // Detector substitutes its default
	}
	return time.Duration(c.ToleranceMinutes) * time.Minute
}

// MutationDelay returns the pacing delay as a duration.
func (c Config) MutationDelay() time.Duration {
	if c.MutationDelayMs <= 0 {
		return 0
	}
	return time.Duration(c.MutationDelayMs) * time.Millisecond
}

// Window returns the run window [from, to) anchored at now.
func (c Config) Window(now time.Time) (time.Time, time.Time) {
	days := c.WindowDays
	if days <= 0 {
		days = 60
	}
	return now, now.AddDate(0, 0, days)
}
