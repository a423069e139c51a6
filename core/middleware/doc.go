// Package middleware groups the HTTP middleware of the kg-sync server.
//
//   - auth: API key check (X-API-Key header or Bearer token)
//   - rayid: per-request ray ID in the context and the X-Ray-ID header
//
// Both are registered globally in the start command, rayid first.
package middleware
