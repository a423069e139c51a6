// Package source loads product records from local files, object storage or
// the catalog database.
//
// Records stay loosely typed maps; the builder is the only place that
// interprets them. A malformed input is fatal for the run, so every decode
// error wraps ErrMalformedInput.
package source
