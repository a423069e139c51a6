package reconcile

import "kg-sync/core/schema"

// Config is the sync section of the application configuration.
type Config struct {
	// DatasetURI is the base every identifier is minted under.
	DatasetURI string `mapstructure:"dataset_uri"`

	// BatchSize is the number of records built, validated and dispatched
	// together.
	BatchSize int `mapstructure:"batch_size" default:"50"`

	// Validation enables the structural validation gate.
	Validation bool `mapstructure:"validation" default:"true"`

	// Reuse resolves brands through the entity reuse manager.
	Reuse bool `mapstructure:"reuse" default:"true"`

	// Strict promotes missing recommended fields to errors.
	Strict bool `mapstructure:"strict" default:"false"`
}

// Options returns the run options described by c.
func (c Config) Options() Options {
	return Options{
		BatchSize: c.BatchSize,
		Validate:  c.Validation,
		Strict:    c.Strict,
		Reuse:     c.Reuse,
	}
}

// Options controls a single sync run.
type Options struct {
	BatchSize int
	Validate  bool
	Strict    bool
	Reuse     bool

	// DryRun builds, plans and validates but sends nothing.
	DryRun bool
}

// DefaultBatchSize is used when Options.BatchSize is not positive.
const DefaultBatchSize = 50

func (o Options) batchSize() int {
	if o.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return o.BatchSize
}

// Stats are the aggregate counts of a run.
type Stats struct {
	Total     int `json:"total"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Errors    int `json:"errors"`
	Skipped   int `json:"skipped"`
	NoChanges int `json:"no_changes"`
}

func (s *Stats) add(d Stats) {
	s.Created += d.Created
	s.Updated += d.Updated
	s.Errors += d.Errors
	s.Skipped += d.Skipped
	s.NoChanges += d.NoChanges
}

// Batch is the create/update split of one batch of products.
type Batch struct {
	Create []*schema.Product
	Update []*schema.Product
}

// Len returns the number of products in the batch.
func (b Batch) Len() int { return len(b.Create) + len(b.Update) }

// All returns the products to create followed by the products to update.
func (b Batch) All() []*schema.Product {
	out := make([]*schema.Product, 0, b.Len())
	out = append(out, b.Create...)
	return append(out, b.Update...)
}
