package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"kg-sync/core/reconcile"
	"kg-sync/core/storage"
	"kg-sync/core/validation"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// RunReport is the persisted summary of one sync run.
type RunReport struct {
	RunID      string                  `json:"run_id"`
	Mode       string                  `json:"mode"`
	DryRun     bool                    `json:"dry_run"`
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt time.Time               `json:"finished_at"`
	Stats      *reconcile.Stats        `json:"stats"`
	Validation *validation.BatchResult `json:"validation,omitempty"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Text renders the report for humans: the run counters followed by the
// validation report, if any.
func (r *RunReport) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (%s", r.RunID, r.Mode)
	if r.DryRun {
		b.WriteString(", dry run")
	}
	b.WriteString(")\n")
	fmt.Fprintf(&b, "Started: %s\nFinished: %s\n\n", r.StartedAt.UTC().Format(time.RFC3339), r.FinishedAt.UTC().Format(time.RFC3339))
	if s := r.Stats; s != nil {
		fmt.Fprintf(&b, "Total: %d\nCreated: %d\nUpdated: %d\nNo changes: %d\nSkipped: %d\nErrors: %d\n",
			s.Total, s.Created, s.Updated, s.NoChanges, s.Skipped, s.Errors)
	}
	if r.Validation != nil && r.Validation.Total > 0 {
		b.WriteString("\n")
		b.WriteString(validation.Report(*r.Validation))
		b.WriteString("\n")
	}
	return b.String()
}

// ReportInfo describes a stored run report.
type ReportInfo struct {
	RunID        string    `json:"run_id"`
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Reports uploads run reports to object storage.
type Reports struct {
	client storage.Client
	bucket string
	prefix string
}

// NewReports writes reports to bucket under prefix.
func NewReports(client storage.Client, bucket, prefix string) *Reports {
	return &Reports{client: client, bucket: bucket, prefix: prefix}
}

// Upload stores {prefix}{run-id}.json and {prefix}{run-id}.txt and returns
// their keys.
func (r *Reports) Upload(ctx context.Context, report *RunReport) ([]string, error) {
	if err := storage.EnsureBucket(ctx, r.client, r.bucket); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	jsonKey := r.prefix + report.RunID + ".json"
	textKey := r.prefix + report.RunID + ".txt"
	if err := storage.Upload(ctx, r.client, r.bucket, jsonKey, data, "application/json"); err != nil {
		return nil, err
	}
	if err := storage.Upload(ctx, r.client, r.bucket, textKey, []byte(report.Text()), "text/plain; charset=utf-8"); err != nil {
		return []string{jsonKey}, err
	}
	return []string{jsonKey, textKey}, nil
}

// List returns the stored JSON run reports, newest first.
func (r *Reports) List(ctx context.Context) ([]ReportInfo, error) {
	out := []ReportInfo{}
	objects := r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: r.prefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list reports in %s: %w", r.bucket, obj.Err)
		}
		runID, ok := strings.CutSuffix(strings.TrimPrefix(obj.Key, r.prefix), ".json")
		if !ok || runID == "" {
			continue
		}
		out = append(out, ReportInfo{RunID: runID, Key: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	slices.SortFunc(out, func(a, b ReportInfo) int {
		return b.LastModified.Compare(a.LastModified)
	})
	return out, nil
}
