// Package migrations applies the embedded PostgreSQL schema.
package migrations

import (
	"context"
	_ "embed"

	"github.com/jmoiron/sqlx"
	"github.com/sjbrooks/Warbler/internal/logger"
)

//go:embed schema.sql
var schema string

// Schema returns the embedded DDL.
func Schema() string {
	return schema
}

// Apply creates the tables, constraints and indexes if they do not exist yet.
// It is safe to run on every start.
func Apply(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		logger.Log.Errorw("failed to apply schema", "error", err)
		return err
	}
	logger.Log.Infow("schema applied")
	return nil
}
