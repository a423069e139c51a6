package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"kg-sync/core/database"
	"kg-sync/core/identity"
	"kg-sync/core/kg"
	"kg-sync/core/logger"
	"kg-sync/core/reconcile"
	"kg-sync/core/server"
	"kg-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingDataset is returned when an operation needs identifiers but no
// dataset URI is configured.
var ErrMissingDataset = errors.New("sync.dataset_uri is not set")

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// API holds the knowledge-graph endpoint and key.
	API kg.Config `mapstructure:"api"`
	// Sync holds the dataset and run defaults.
	Sync reconcile.Config `mapstructure:"sync"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional catalog database.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SYNC_BATCH_SIZE -> sync.batch_size)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate reports every setting that cannot work, joined into one error.
// A missing API key is left to kg.NewClient, since offline commands run
// without one.
func (c *Config) Validate() error {
	var errs []error

	if c.Sync.DatasetURI != "" && !identity.IsHTTPIRI(c.Sync.DatasetURI) {
		errs = append(errs, fmt.Errorf("sync.dataset_uri must be an absolute http(s) URI: %q", c.Sync.DatasetURI))
	}
	if c.Sync.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("sync.batch_size must be positive: %d", c.Sync.BatchSize))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format must be json or console: %q", c.Log.Format))
	}
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver must be %s or %s: %q", database.DriverMySQL, database.DriverSQLite, c.Database.Driver))
	}

	return errors.Join(errs...)
}

// DatasetURI returns the configured dataset base or ErrMissingDataset.
func (c *Config) DatasetURI() (string, error) {
	if c.Sync.DatasetURI == "" {
		return "", ErrMissingDataset
	}
	return c.Sync.DatasetURI, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
