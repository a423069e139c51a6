// Package metrics exposes sync counters in the prometheus text format.
package metrics
