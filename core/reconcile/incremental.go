package reconcile

import (
	"context"
	"errors"
	"strings"

	"kg-sync/core/kg"
	"kg-sync/core/schema"

	"go.uber.org/zap"
)

// PatchPathPrefix prefixes every patched predicate.
const PatchPathPrefix = "/https://schema.org/"

// Incremental patches only the fields that changed, one entity at a time.
// Records whose entity is not in the graph are counted as errors; they are
// never created here.
func (o *Orchestrator) Incremental(ctx context.Context, records []map[string]any) (*Stats, error) {
	stats := &Stats{Total: len(records)}
	if o.metrics != nil {
		o.metrics.Runs.Inc()
	}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		p, err := o.builder.FromScraped(ctx, rec)
		if err != nil {
			o.log.Warn("Failed to build product", zap.Int("record", i), zap.Error(err))
			stats.Errors++
			continue
		}

		existing, err := o.client.GetEntity(ctx, p.ID)
		if errors.Is(err, kg.ErrNotFound) {
			o.log.Warn("Product not found, skipping patch", zap.String("id", p.ID))
			stats.Errors++
			continue
		}
		if err != nil {
			o.log.Error("Failed to fetch product", zap.String("id", p.ID), zap.Error(err))
			stats.Errors++
			continue
		}

		ops := Diff(existing, p)
		if len(ops) == 0 {
			o.log.Debug("No changes", zap.String("id", p.ID))
			stats.NoChanges++
			continue
		}
		if o.opts.DryRun {
			stats.Skipped++
			continue
		}

		if err := o.client.PatchEntity(ctx, p.ID, ops); err != nil {
			o.log.Error("Failed to patch product", zap.String("id", p.ID), zap.Error(err))
			stats.Errors++
			continue
		}
		o.log.Info("Patched product", zap.String("id", p.ID), zap.Int("changes", len(ops)))
		stats.Updated++
	}

	if o.metrics != nil {
		o.metrics.Patched.Add(float64(stats.Updated))
		o.metrics.Unchanged.Add(float64(stats.NoChanges))
		o.metrics.Errors.Add(float64(stats.Errors))
		o.metrics.Skipped.Add(float64(stats.Skipped))
	}
	o.log.Info("Incremental update complete",
		zap.Int("total", stats.Total),
		zap.Int("updated", stats.Updated),
		zap.Int("no_changes", stats.NoChanges),
		zap.Int("errors", stats.Errors),
	)
	return stats, nil
}

// Diff compares the patchable fields of p against the graph's copy. A field
// set on p is added or replaced; a field only the graph has is removed.
func Diff(existing *kg.RemoteEntity, p *schema.Product) []kg.PatchOp {
	fields := []struct {
		name string
		have string
		want string
	}{
		{"name", existing.Name, p.Name},
		{"description", existing.Description, p.Description},
		{"price", existing.Price, p.Price()},
		{"image", existing.Image, p.PrimaryImage()},
		{"sku", existing.SKU, p.SKU},
		{"availability", canonicalSchemaIRI(existing.Availability), canonicalSchemaIRI(p.Availability())},
	}

	var ops []kg.PatchOp
	for _, f := range fields {
		if f.have == f.want {
			continue
		}
		path := PatchPathPrefix + f.name
		switch {
		case f.want != "" && f.have == "":
			ops = append(ops, kg.PatchOp{Op: "add", Path: path, Value: f.want})
		case f.want != "":
			ops = append(ops, kg.PatchOp{Op: "replace", Path: path, Value: f.want})
		default:
			ops = append(ops, kg.PatchOp{Op: "remove", Path: path})
		}
	}
	return ops
}

// canonicalSchemaIRI folds the http form of a schema.org IRI onto https.
func canonicalSchemaIRI(v string) string {
	if rest, ok := strings.CutPrefix(v, "http://schema.org/"); ok {
		return "https://schema.org/" + rest
	}
	return v
}
