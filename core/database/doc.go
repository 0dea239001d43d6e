// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure PostgreSQL, MySQL or SQLite
// connections from the application's configuration. PostgreSQL is the production
// target; SQLite backs the in-memory tests.
//
// # Connect
//
// Connect opens the pool, applies pool limits and pings the server within the
// configured timeout. Close releases the pool on shutdown.
//
// # Schema Inspection
//
// GetTableColumns lists the live columns of a table for every supported dialect.
// The `check` command uses it to compare the synchronized tables with the models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	defer database.Close(db)
//
//	columns, err := database.GetTableColumns(db, "products")
package database
