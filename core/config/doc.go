// Package config loads the application configuration.
//
// Values come from environment variables, optionally seeded from a .env file,
// on top of the `default` tags of each section's struct. Nested keys map to
// upper-case variables joined by underscores (database.host -> DATABASE_HOST).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, shutdown budget
//   - Log: level and format
//   - Database: driver (postgres, mysql, sqlite) and connection details
//   - Storage: S3/MinIO bucket for the projection archive
//   - MoySklad: API base URL, token, page size, counterparty tag
//   - Sync: cooldown and idle intervals, excluded groups, preload switch
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Cooldown())
package config
