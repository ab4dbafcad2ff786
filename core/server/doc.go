// Package server holds the HTTP server configuration.
//
// The Fiber application itself is assembled in cmd/start.go; this
// package only carries the listen port and the API key the auth
// middleware enforces.
package server
