package reconcile

import (
	"context"
	"fmt"
	"time"

	"kg-sync/core/builder"
	"kg-sync/core/kg"
	"kg-sync/core/metrics"
	"kg-sync/core/reuse"
	"kg-sync/core/schema"
	"kg-sync/core/validation"

	"go.uber.org/zap"
)

// Orchestrator pushes product records to the knowledge graph. One
// orchestrator serves one run; its reuse cache lives as long as it does.
type Orchestrator struct {
	client    kg.Client
	builder   *builder.Builder
	validator *validation.Validator
	reuse     *reuse.Manager
	opts      Options
	log       *zap.Logger
	metrics   *metrics.Registry

	validation validation.BatchResult
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.log = l
	}
}

// WithMetrics records run counters on r.
func WithMetrics(r *metrics.Registry) Option {
	return func(o *Orchestrator) {
		o.metrics = r
	}
}

// New prepares a run. With opts.Reuse it preloads the reuse cache; a preload
// failure aborts before anything is written.
func New(ctx context.Context, client kg.Client, baseURI string, opts Options, options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		client:    client,
		validator: validation.New(),
		opts:      opts,
		log:       zap.NewNop(),
	}
	for _, opt := range options {
		opt(o)
	}

	var builderOpts []builder.Option
	if opts.Reuse {
		var reuseOpts []reuse.Option
		if opts.DryRun {
			reuseOpts = append(reuseOpts, reuse.ReadOnly())
		}
		o.reuse = reuse.New(client, baseURI, o.log, reuseOpts...)
		if err := o.reuse.Preload(ctx); err != nil {
			return nil, fmt.Errorf("failed to preload entity cache: %w", err)
		}
		builderOpts = append(builderOpts, builder.WithBrandResolver(o.reuse))
	}
	o.builder = builder.New(baseURI, builderOpts...)

	return o, nil
}

// Reuse returns the reuse manager, or nil when reuse is disabled.
func (o *Orchestrator) Reuse() *reuse.Manager { return o.reuse }

// Validation returns every validation result produced by the gate so far.
func (o *Orchestrator) Validation() validation.BatchResult { return o.validation }

// Rejected returns the entities the validation gate dropped.
func (o *Orchestrator) Rejected() []validation.EntityResult { return o.validation.Failed() }

// Sync builds, validates and upserts records in batches. Per-record and
// per-batch failures are counted in the returned stats; only a failed
// snapshot or a cancelled context is returned as an error.
func (o *Orchestrator) Sync(ctx context.Context, records []map[string]any) (*Stats, error) {
	stats := &Stats{Total: len(records)}
	if o.metrics != nil {
		o.metrics.Runs.Inc()
	}

	codes, err := o.client.ListTradeCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing trade codes: %w", err)
	}
	snapshot := NewSnapshot(codes)
	o.log.Info("Fetched existing products", zap.Int("count", len(snapshot)))

	size := o.opts.batchSize()
	batches := (len(records) + size - 1) / size
	for n, start := 0, 0; start < len(records); n, start = n+1, start+size {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		end := min(start+size, len(records))
		o.log.Info("Processing batch",
			zap.Int("batch", n+1),
			zap.Int("batches", batches),
			zap.Int("records", end-start),
		)
		stats.add(o.processBatch(ctx, snapshot, records[start:end], start))
	}

	o.log.Info("Sync complete",
		zap.Int("total", stats.Total),
		zap.Int("created", stats.Created),
		zap.Int("updated", stats.Updated),
		zap.Int("errors", stats.Errors),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func (o *Orchestrator) processBatch(ctx context.Context, snapshot Snapshot, records []map[string]any, offset int) Stats {
	began := time.Now()
	var d Stats

	products := make([]*schema.Product, 0, len(records))
	for i, rec := range records {
		p, err := o.builder.FromScraped(ctx, rec)
		if err != nil {
			o.log.Warn("Failed to build product", zap.Int("record", offset+i), zap.Error(err))
			d.Errors++
			continue
		}
		products = append(products, p)
	}

	batch := Plan(snapshot, products)
	if o.opts.Validate && batch.Len() > 0 {
		var rejected int
		batch, rejected = o.gate(snapshot, batch)
		d.Errors += rejected
	}

	if o.opts.DryRun {
		d.Skipped += batch.Len()
		o.log.Info("Dry run, nothing sent",
			zap.Int("would_create", len(batch.Create)),
			zap.Int("would_update", len(batch.Update)),
		)
	} else {
		if n, ok := o.dispatch(ctx, "create", batch.Create); ok {
			d.Created += n
		} else {
			d.Errors += n
		}
		if n, ok := o.dispatch(ctx, "update", batch.Update); ok {
			d.Updated += n
		} else {
			d.Errors += n
		}
	}

	o.observe(d, time.Since(began))
	return d
}

// gate validates every product of the batch, drops the invalid ones and
// splits the survivors again. It returns the number of products dropped.
func (o *Orchestrator) gate(snapshot Snapshot, batch Batch) (Batch, int) {
	all := batch.All()
	docs := make([]map[string]any, 0, len(all))
	kept := make([]*schema.Product, 0, len(all))
	rejected := 0
	for _, p := range all {
		doc, err := schema.ToDocument(p)
		if err != nil {
			o.log.Warn("Failed to render product", zap.String("id", p.ID), zap.Error(err))
			rejected++
			continue
		}
		docs = append(docs, doc)
		kept = append(kept, p)
	}

	res := o.validator.ValidateBatch(docs, o.opts.Strict)
	o.retain(res)
	if res.Invalid == 0 && rejected == 0 {
		o.log.Info("All entities passed validation", zap.Int("count", res.Total))
		return batch, 0
	}

	o.log.Warn("Entities failed validation", zap.Int("invalid", res.Invalid+rejected), zap.Int("count", len(all)))
	survivors := make([]*schema.Product, 0, res.Valid)
	for _, e := range res.Entities {
		if e.Valid {
			survivors = append(survivors, kept[e.Index])
		}
	}
	if o.metrics != nil {
		o.metrics.Rejected.Add(float64(res.Invalid + rejected))
	}
	return Plan(snapshot, survivors), rejected + res.Invalid
}

// retain appends a batch's results to the run-wide validation record,
// renumbering them in run order.
func (o *Orchestrator) retain(res validation.BatchResult) {
	base := len(o.validation.Entities)
	o.validation.Total += res.Total
	o.validation.Valid += res.Valid
	o.validation.Invalid += res.Invalid
	for _, e := range res.Entities {
		e.Index += base
		o.validation.Entities = append(o.validation.Entities, e)
	}
}

// dispatch sends products in one batch call. The count is returned either
// way; ok reports whether the call succeeded.
func (o *Orchestrator) dispatch(ctx context.Context, action string, products []*schema.Product) (int, bool) {
	if len(products) == 0 {
		return 0, true
	}
	entities := make([]schema.Entity, len(products))
	for i, p := range products {
		entities[i] = p
	}

	o.log.Info("Sending products", zap.String("action", action), zap.Int("count", len(entities)))
	if err := o.client.BatchUpsert(ctx, entities); err != nil {
		o.log.Error("Batch call failed", zap.String("action", action), zap.Int("count", len(entities)), zap.Error(err))
		return len(entities), false
	}
	return len(entities), true
}

func (o *Orchestrator) observe(d Stats, took time.Duration) {
	if o.metrics == nil {
		return
	}
	o.metrics.Batches.Inc()
	o.metrics.BatchLatencySec.Observe(took.Seconds())
	o.metrics.Created.Add(float64(d.Created))
	o.metrics.Updated.Add(float64(d.Updated))
	o.metrics.Errors.Add(float64(d.Errors))
	o.metrics.Skipped.Add(float64(d.Skipped))
}
