// Package schedule is the feature module that runs reconciliation.
//
// The Service wires the feed loader, the reconciliation engine, and the
// calendar client into one Run operation: load feed (abort on failure,
// before any mutation), archive the snapshot, list the managed calendar
// window, plan, apply, then persist a RunRecord and update metrics.
// Runs are serialized through singleflight so a cron tick and a manual
// trigger can never race on the shared calendar.
//
// The HTTP surface exposes the last run summary, persisted run history,
// and a manual trigger:
//
//	GET  /schedule/status
//	GET  /schedule/runs
//	POST /schedule/sync
package schedule
