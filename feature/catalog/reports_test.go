package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"kg-sync/core/kg/mocks"
	"kg-sync/core/reconcile"
	storagemocks "kg-sync/core/storage/mocks"
	"kg-sync/core/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunReportText(t *testing.T) {
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	r := &RunReport{
		RunID:      "run-1",
		Mode:       ModeFull,
		DryRun:     true,
		StartedAt:  at,
		FinishedAt: at.Add(time.Minute),
		Stats:      &reconcile.Stats{Total: 3, Created: 1, Updated: 1, Errors: 1},
		Validation: &validation.BatchResult{Total: 2, Valid: 2},
	}

	text := r.Text()
	assert.Contains(t, text, "Run run-1 (full, dry run)")
	assert.Contains(t, text, "Started: 2026-10-01T12:00:00Z")
	assert.Contains(t, text, "Created: 1\n")
	assert.Contains(t, text, "Errors: 1\n")
	assert.Contains(t, text, "ENTITY VALIDATION REPORT")
}

func TestReportsUpload(t *testing.T) {
	report := &RunReport{RunID: "run-1", Mode: ModeIncremental, Stats: &reconcile.Stats{Total: 1}}

	t.Run("WritesJSONAndText", func(t *testing.T) {
		store := new(storagemocks.Client)
		store.On("BucketExists", mock.Anything, "kg-sync").Return(true, nil)
		store.On("PutObject", mock.Anything, "kg-sync", "reports/run-1.json", mock.Anything, mock.Anything, mock.MatchedBy(func(o minio.PutObjectOptions) bool {
			return o.ContentType == "application/json"
		})).Return(minio.UploadInfo{}, nil)
		store.On("PutObject", mock.Anything, "kg-sync", "reports/run-1.txt", mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

		keys, err := NewReports(store, "kg-sync", "reports/").Upload(context.Background(), report)
		require.NoError(t, err)
		assert.Equal(t, []string{"reports/run-1.json", "reports/run-1.txt"}, keys)
		store.AssertExpectations(t)
	})

	t.Run("CreatesBucket", func(t *testing.T) {
		store := new(storagemocks.Client)
		store.On("BucketExists", mock.Anything, "kg-sync").Return(false, nil)
		store.On("MakeBucket", mock.Anything, "kg-sync", mock.Anything).Return(nil)
		store.On("PutObject", mock.Anything, "kg-sync", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

		_, err := NewReports(store, "kg-sync", "").Upload(context.Background(), report)
		require.NoError(t, err)
		store.AssertCalled(t, "MakeBucket", mock.Anything, "kg-sync", mock.Anything)
	})

	t.Run("UploadFailure", func(t *testing.T) {
		store := new(storagemocks.Client)
		store.On("BucketExists", mock.Anything, "kg-sync").Return(true, nil)
		store.On("PutObject", mock.Anything, "kg-sync", "reports/run-1.json", mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, errors.New("denied"))

		keys, err := NewReports(store, "kg-sync", "reports/").Upload(context.Background(), report)
		assert.Error(t, err)
		assert.Empty(t, keys)
	})
}

func objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, o := range infos {
		ch <- o
	}
	close(ch)
	return ch
}

func TestReportsList(t *testing.T) {
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	t.Run("NewestFirst", func(t *testing.T) {
		store := new(storagemocks.Client)
		store.On("ListObjects", mock.Anything, "kg-sync", minio.ListObjectsOptions{Prefix: "reports/", Recursive: true}).Return(objects(
			minio.ObjectInfo{Key: "reports/run-1.json", Size: 10, LastModified: at},
			minio.ObjectInfo{Key: "reports/run-1.txt", Size: 5, LastModified: at},
			minio.ObjectInfo{Key: "reports/run-2.json", Size: 12, LastModified: at.Add(time.Hour)},
		))

		list, err := NewReports(store, "kg-sync", "reports/").List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []ReportInfo{
			{RunID: "run-2", Key: "reports/run-2.json", Size: 12, LastModified: at.Add(time.Hour)},
			{RunID: "run-1", Key: "reports/run-1.json", Size: 10, LastModified: at},
		}, list)
	})

	t.Run("ListError", func(t *testing.T) {
		store := new(storagemocks.Client)
		store.On("ListObjects", mock.Anything, "kg-sync", mock.Anything).Return(objects(
			minio.ObjectInfo{Err: errors.New("access denied")},
		))

		_, err := NewReports(store, "kg-sync", "reports/").List(context.Background())
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestHandleListReports(t *testing.T) {
	t.Run("Configured", func(t *testing.T) {
		store := new(storagemocks.Client)
		store.On("ListObjects", mock.Anything, "kg-sync", mock.Anything).Return(objects(
			minio.ObjectInfo{Key: "reports/run-1.json", Size: 10},
		))
		app := fiber.New()
		svc := NewService(new(mocks.Client), base, reconcile.Options{}, NewReports(store, "kg-sync", "reports/"), nil, zap.NewNop())
		require.NoError(t, NewFeature(svc).Load(app))

		resp := do(t, app, "GET", "/catalog/reports", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var list []ReportInfo
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
		require.Len(t, list, 1)
		assert.Equal(t, "run-1", list[0].RunID)
	})

	t.Run("NotConfigured", func(t *testing.T) {
		app := setupTestApp(t, new(mocks.Client), reconcile.Options{})
		resp := do(t, app, "GET", "/catalog/reports", nil)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestServiceSyncUploadsReport(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListTradeCodes", mock.Anything).Return([]string{}, nil)
	client.On("BatchUpsert", mock.Anything, mock.Anything).Return(nil)

	store := new(storagemocks.Client)
	store.On("BucketExists", mock.Anything, "kg-sync").Return(true, nil)
	store.On("PutObject", mock.Anything, "kg-sync", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

	svc := NewService(client, base, reconcile.Options{}, NewReports(store, "kg-sync", "reports/"), nil, zap.NewNop())
	res, err := svc.Sync(context.Background(), SyncRequest{
		Records: []map[string]any{{"gtin": codeX, "name": "A"}},
		Report:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Created)
	assert.Equal(t, []string{
		"reports/" + res.RunID + ".json",
		"reports/" + res.RunID + ".txt",
	}, res.Reports)
	store.AssertNumberOfCalls(t, "PutObject", 2)
}
