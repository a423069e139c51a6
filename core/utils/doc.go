// Package utils provides helpers for reading loosely typed input records.
// Records arrive from JSON, CSV and database rows, so the same field can be a
// string, a number, a list or missing altogether.
package utils
