// Package config loads kg-sync settings from the environment and an optional
// .env file.
//
// Every key has a default declared on its struct field with a `default` tag.
// Environment variables map onto nested keys by replacing dots with
// underscores, so sync.batch_size is read from SYNC_BATCH_SIZE.
//
// # Sections
//
//   - server: HTTP port and API key
//   - api: knowledge-graph base URL and key
//   - sync: dataset URI and run defaults
//   - storage: MinIO/S3 bucket for inputs and reports
//   - log: level and format
//   - database: optional catalog database (mysql or sqlite)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
