// Package middleware contains HTTP middleware for the Fiber application.
//
// The daemon's ops endpoints are small but externally reachable, so the
// cross-cutting concerns live here rather than inline in cmd/start.go:
//
//   - auth: static API key validation. POST /schedule/sync mutates a real
//     calendar, so the write surface is never left open.
//   - rayid: assigns every request a ray_id for tracing. Reconciliation
//     runs triggered over HTTP log under the same id, which is what makes
//     a "who deleted my event" question answerable from the logs.
//
// Both are registered globally in the daemon bootstrap; the metrics
// scrape endpoint is mounted ahead of auth.
package middleware
