package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the sync counters on a private prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	Runs            prometheus.Counter
	Created         prometheus.Counter
	Updated         prometheus.Counter
	Patched         prometheus.Counter
	Errors          prometheus.Counter
	Rejected        prometheus.Counter
	Skipped         prometheus.Counter
	Unchanged       prometheus.Counter
	Batches         prometheus.Counter
	BatchLatencySec prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounter(prometheus.CounterOpts{Name: "kgsync_runs_total"})
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "kgsync_entities_created_total"})
	updated := prometheus.NewCounter(prometheus.CounterOpts{Name: "kgsync_entities_updated_total"})
	patched := prometheus.NewCounter(prometheus.CounterOpts{Name: "kgsync_entities_patched_total"})
	errs := prometheus.NewCounter(prometheus.CounterOpts{Name: "kgsync_entity_errors_total"})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "kgsync_validation_rejected_total"})
	skipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "kgsync_entities_skipped_total"})
	unchanged := prometheus.NewCounter(prometheus.CounterOpts{Name: "kgsync_entities_unchanged_total"})
	batches := prometheus.NewCounter(prometheus.CounterOpts{Name: "kgsync_batches_total"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "kgsync_batch_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(runs, created, updated, patched, errs, rejected, skipped, unchanged, batches, latency)
	return &Registry{
		reg:             r,
		Runs:            runs,
		Created:         created,
		Updated:         updated,
		Patched:         patched,
		Errors:          errs,
		Rejected:        rejected,
		Skipped:         skipped,
		Unchanged:       unchanged,
		Batches:         batches,
		BatchLatencySec: latency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
