// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally overlaid by
// a local .env file (via godotenv), and is unmarshalled with Viper into
// a single Config struct composed of per-package partial configs.
// Defaults live in `default` struct tags next to the fields they cover;
// bindValues walks the struct reflectively so a new field only needs its
// tags, never a registration call.
//
// Every knob — feed URL, calendar ID, managed prefix, tolerances,
// delays, schedule — flows from here into constructors. No package reads
// ambient process state after startup.
//
// # Environment mapping
//
// Nested keys map to underscore-joined environment variables:
//
//	feed.url            -> FEED_URL
//	sync.title_prefix   -> SYNC_TITLE_PREFIX
//	database.password   -> DATABASE_PASSWORD
package config
