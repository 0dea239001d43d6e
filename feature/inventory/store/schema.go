package store

import (
	"context"
	"fmt"

	"inventory-sync/core/database"
	"inventory-sync/feature/inventory/models"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing the live schema with the models.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

// TableReport lists what a single table is missing.
type TableReport struct {
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "missing", "error"
}

// CheckSchema verifies that every synchronized table exists with the columns
// its model declares.
func (s *Store) CheckSchema(ctx context.Context) (*SchemaReport, error) {
	db := s.db.WithContext(ctx)
	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models.All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("failed to parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		actual, err := database.GetTableColumns(db, table)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}

		tbl := TableReport{MissingColumns: []string{}, Status: "ok"}
		if len(actual) == 0 {
			tbl.Status = "missing"
			report.Matched = false
			report.Tables[table] = tbl
			continue
		}

		present := make(map[string]struct{}, len(actual))
		for _, col := range actual {
			present[col.Field] = struct{}{}
		}
		for _, name := range stmt.Schema.DBNames {
			if _, ok := present[name]; !ok {
				tbl.MissingColumns = append(tbl.MissingColumns, name)
				tbl.Status = "error"
				report.Matched = false
			}
		}
		report.Tables[table] = tbl
	}

	return report, nil
}
