// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from this configuration; features
// and middleware are wired there.
package server
