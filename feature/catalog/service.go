package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kg-sync/core/identity"
	"kg-sync/core/kg"
	"kg-sync/core/logger"
	"kg-sync/core/metrics"
	"kg-sync/core/reconcile"
	"kg-sync/core/validation"

	"go.uber.org/zap"
)

// Run modes.
const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
)

var (
	// ErrInvalidID is returned when an entity identifier is not an absolute IRI.
	ErrInvalidID = errors.New("invalid entity id")
	// ErrNoReportStore is returned when run reports are not configured.
	ErrNoReportStore = errors.New("no report store configured")
)

// SyncRequest describes one sync run.
type SyncRequest struct {
	Records     []map[string]any `json:"records"`
	Incremental bool             `json:"incremental"`
	DryRun      bool             `json:"dry_run"`
	// Report uploads the run report when a report store is configured.
	Report bool `json:"report"`
}

// SyncResult is the outcome of a run.
type SyncResult struct {
	RunID      string                  `json:"run_id"`
	Stats      *reconcile.Stats        `json:"stats"`
	Validation *validation.BatchResult `json:"validation,omitempty"`
	Reports    []string                `json:"reports,omitempty"`
}

// ValidateResult is the outcome of validating a list of documents.
type ValidateResult struct {
	validation.BatchResult
	Report string `json:"report"`
}

// Service runs catalog operations against the knowledge graph.
type Service struct {
	client    kg.Client
	baseURI   string
	opts      reconcile.Options
	reports   *Reports
	metrics   *metrics.Registry
	validator *validation.Validator
	logger    *zap.Logger
}

// NewService creates a catalog service. reports and reg may be nil.
func NewService(client kg.Client, baseURI string, opts reconcile.Options, reports *Reports, reg *metrics.Registry, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		baseURI:   baseURI,
		opts:      opts,
		reports:   reports,
		metrics:   reg,
		validator: validation.New(),
		logger:    logger,
	}
}

// Sync runs a full or incremental sync with a fresh orchestrator.
func (s *Service) Sync(ctx context.Context, req SyncRequest) (*SyncResult, error) {
	runID := NewRunID()
	l := logger.WithRun(s.logger, runID)

	opts := s.opts
	opts.DryRun = opts.DryRun || req.DryRun
	options := []reconcile.Option{reconcile.WithLogger(l)}
	if s.metrics != nil {
		options = append(options, reconcile.WithMetrics(s.metrics))
	}

	started := time.Now()
	o, err := reconcile.New(ctx, s.client, s.baseURI, opts, options...)
	if err != nil {
		return nil, err
	}

	mode := ModeFull
	var stats *reconcile.Stats
	if req.Incremental {
		mode = ModeIncremental
		stats, err = o.Incremental(ctx, req.Records)
	} else {
		stats, err = o.Sync(ctx, req.Records)
	}
	if err != nil {
		return nil, fmt.Errorf("%s sync failed: %w", mode, err)
	}

	res := &SyncResult{RunID: runID, Stats: stats}
	if v := o.Validation(); v.Total > 0 {
		res.Validation = &v
	}

	if req.Report && s.reports != nil {
		report := &RunReport{
			RunID:      runID,
			Mode:       mode,
			DryRun:     opts.DryRun,
			StartedAt:  started,
			FinishedAt: time.Now(),
			Stats:      stats,
			Validation: res.Validation,
		}
		keys, err := s.reports.Upload(ctx, report)
		if err != nil {
			l.Error("Failed to upload run report", zap.Error(err))
		}
		res.Reports = keys
	}
	return res, nil
}

// Validate checks JSON-LD documents without sending them anywhere.
func (s *Service) Validate(docs []map[string]any, strict bool) ValidateResult {
	res := s.validator.ValidateBatch(docs, strict || s.opts.Strict)
	return ValidateResult{BatchResult: res, Report: validation.Report(res)}
}

// ProductID mints the Digital Link identifier for a trade code.
func (s *Service) ProductID(code, serial, lot string) (string, error) {
	return identity.BuildProductID(s.baseURI, code, serial, lot)
}

// DeleteEntity removes an entity from the graph.
func (s *Service) DeleteEntity(ctx context.Context, id string) error {
	if !identity.IsHTTPIRI(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if err := s.client.DeleteEntity(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Deleted entity", zap.String("id", id))
	return nil
}

// Reports lists the stored run reports, newest first.
func (s *Service) Reports(ctx context.Context) ([]ReportInfo, error) {
	if s.reports == nil {
		return nil, ErrNoReportStore
	}
	return s.reports.List(ctx)
}
