package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"kg-sync/core/builder"
	"kg-sync/core/database"
	"kg-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

var (
	ErrMalformedInput      = errors.New("malformed input")
	ErrUnsupportedFormat   = errors.New("unsupported input format")
	ErrStorageUnavailable  = errors.New("object storage is not configured")
	ErrDatabaseUnavailable = errors.New("catalog database is not configured")
)

// Deps are the optional backends a location may need.
type Deps struct {
	Storage storage.Client
	Bucket  string
	DB      *gorm.DB
	Table   string
}

// Open loads the records at location:
//
//   - s3://bucket/key reads an object from storage
//   - db: or db:table reads every row of a catalog table
//   - anything else is a local file
//
// The format of files and objects follows the extension: .json, .jsonld,
// .ndjson, .jsonl or .csv.
func Open(ctx context.Context, location string, deps Deps) ([]Record, error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		if deps.Storage == nil {
			return nil, ErrStorageUnavailable
		}
		bucket, key, err := storage.ParseURI(location, deps.Bucket)
		if err != nil {
			return nil, err
		}
		return Object(ctx, deps.Storage, bucket, key)
	case strings.HasPrefix(location, "db:"):
		if deps.DB == nil {
			return nil, ErrDatabaseUnavailable
		}
		table := strings.TrimPrefix(location, "db:")
		if table == "" {
			table = deps.Table
		}
		return Table(ctx, deps.DB, table)
	default:
		return File(location)
	}
}

// File loads a local file.
func File(name string) ([]Record, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return Decode(f, filepath.Ext(name))
}

// Object loads bucket/key from storage.
func Object(ctx context.Context, client storage.Client, bucket, key string) ([]Record, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s: %w", bucket, key, err)
	}
	defer obj.Close()
	return Decode(obj, path.Ext(key))
}

// Decode reads r in the format named by ext.
func Decode(r io.Reader, ext string) ([]Record, error) {
	switch strings.ToLower(ext) {
	case ".json", ".jsonld":
		return DecodeJSON(r)
	case ".ndjson", ".jsonl":
		return DecodeNDJSON(r)
	case ".csv":
		return DecodeCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Table reads every row of table. The table must have at least one column
// the builder accepts as a trade code.
func Table(ctx context.Context, db *gorm.DB, table string) ([]Record, error) {
	fields := builder.TradeCodeFields()
	missing, err := database.MissingColumns(db, table, fields...)
	if err != nil {
		return nil, err
	}
	if len(missing) == len(fields) {
		return nil, fmt.Errorf("table %s does not exist or has none of the trade code columns %v", table, fields)
	}

	var rows []map[string]any
	if err := db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		rec := make(Record, len(row))
		for k, v := range row {
			switch t := v.(type) {
			case nil:
				continue
			case []byte:
				rec[k] = string(t)
			default:
				rec[k] = v
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
