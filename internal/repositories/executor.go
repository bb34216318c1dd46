package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sjbrooks/Warbler/internal/logger"
)

// TxGetter returns the transaction bound to the context, or nil when there is none.
type TxGetter func(ctx context.Context) *sqlx.Tx

// executor picks the request transaction when present and the pool otherwise.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// logQuery logs the query on a single line with its args, result and error.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Infow("query",
		"sql", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
