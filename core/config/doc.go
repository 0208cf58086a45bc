// Package config loads the codesync configuration.
//
// Values come from environment variables, optionally seeded from a .env
// file, with defaults taken from the `default` struct tags of each section:
//
//   - Server: HTTP port and API key
//   - Catalog: title, export directory and database connection
//   - Snapshot: backend (file or object), directory, key prefix, cache TTL
//   - Storage: MinIO/S3 credentials and bucket
//   - Log: level and format
//
// Nested keys map to upper-case environment names joined by underscores,
// so catalog.database.driver is read from CATALOG_DATABASE_DRIVER.
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
package config
