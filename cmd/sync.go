package cmd

import (
	"fmt"

	"kg-sync/core/source"
	"kg-sync/core/storage"
	"kg-sync/core/validation"
	"kg-sync/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncInput        string
	syncIncremental  bool
	syncBatchSize    int
	syncNoValidation bool
	syncNoReuse      bool
	syncStrict       bool
	syncDryRun       bool
	syncReport       bool
)

// syncCmd pushes product records to the knowledge graph.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync product records to the knowledge graph",
	Long: `Loads product records, builds schema.org Product entities, validates
them and upserts them in batches. With --incremental, existing products are
patched field by field instead.

Inputs:
  products.json | products.ndjson | products.csv   local file
  s3://bucket/products.csv                         object storage
  db: | db:table                                   catalog database

Examples:
  # Full sync of a local file
  sync --input products.json

  # See what would change without sending anything
  sync --input products.csv --dry-run

  # Patch changed fields and upload the run report
  sync --input db:products --incremental --report`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncInput, "input", "i", "", "Input location (file, s3://bucket/key or db:table)")
	syncCmd.Flags().BoolVar(&syncIncremental, "incremental", false, "Patch changed fields of existing products only")
	syncCmd.Flags().IntVar(&syncBatchSize, "batch-size", 0, "Records per batch (default from sync.batch_size)")
	syncCmd.Flags().BoolVar(&syncNoValidation, "no-validation", false, "Skip the validation gate")
	syncCmd.Flags().BoolVar(&syncNoReuse, "no-reuse", false, "Do not resolve brands against existing entities")
	syncCmd.Flags().BoolVar(&syncStrict, "strict", false, "Treat missing recommended fields as errors")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Build and validate but send nothing")
	syncCmd.Flags().BoolVar(&syncReport, "report", false, "Upload the run report to object storage")
	_ = syncCmd.MarkFlagRequired("input")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := loadRuntime()
	if err != nil {
		return err
	}
	defer l.Sync()

	baseURI, err := cfg.DatasetURI()
	if err != nil {
		return err
	}
	client, err := newGraphClient(cfg)
	if err != nil {
		return err
	}

	opts := cfg.Sync.Options()
	if syncBatchSize > 0 {
		opts.BatchSize = syncBatchSize
	}
	if syncNoValidation {
		opts.Validate = false
	}
	if syncNoReuse {
		opts.Reuse = false
	}
	if syncStrict {
		opts.Strict = true
	}

	deps, err := sourceDeps(cfg, syncInput)
	if err != nil {
		return err
	}
	records, err := source.Open(ctx, syncInput, deps)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", syncInput, err)
	}
	l.Info("Loaded records", zap.String("input", syncInput), zap.Int("count", len(records)))

	var reports *catalog.Reports
	if syncReport {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		reports = catalog.NewReports(store, cfg.Storage.Bucket, cfg.Storage.ReportPrefix)
	}

	svc := catalog.NewService(client, baseURI, opts, reports, nil, l)
	res, err := svc.Sync(ctx, catalog.SyncRequest{
		Records:     records,
		Incremental: syncIncremental,
		DryRun:      syncDryRun,
		Report:      syncReport,
	})
	if err != nil {
		return err
	}

	if res.Validation != nil && res.Validation.Invalid > 0 {
		fmt.Println(validation.Report(*res.Validation))
	}
	s := res.Stats
	l.Info("Sync report",
		zap.String("run_id", res.RunID),
		zap.Int("total", s.Total),
		zap.Int("created", s.Created),
		zap.Int("updated", s.Updated),
		zap.Int("no_changes", s.NoChanges),
		zap.Int("skipped", s.Skipped),
		zap.Int("errors", s.Errors),
	)
	for _, key := range res.Reports {
		l.Info("Uploaded report", zap.String("bucket", cfg.Storage.Bucket), zap.String("key", key))
	}

	if s.Errors > 0 {
		return fmt.Errorf("%d of %d records failed", s.Errors, s.Total)
	}
	return nil
}
