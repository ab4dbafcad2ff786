// Package database handles the run history database connection.
//
// It wraps GORM to configure either a MySQL connection (production) or
// a SQLite file (small deployments and tests) from the application
// configuration. The database is strictly optional: the daemon runs
// without one, it just loses persisted run history.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    logg.Warn("running without run history", zap.Error(err))
//	}
package database
