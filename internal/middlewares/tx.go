package middlewares

import (
	"bytes"
	"context"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sjbrooks/Warbler/internal/logger"
)

// TxMiddleware runs the handler inside a database transaction carried in the
// request context. The response is held back until the transaction ends: a
// status below 400 commits, anything else rolls back. A failed commit turns
// the response into a 500. Callbacks registered with AfterCommit run only
// once the commit succeeded.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.BeginTxx(r.Context(), nil)
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			hooks := &commitHooks{}
			ctx := context.WithValue(setTxToContext(r.Context(), tx), commitHooksKey{}, hooks)

			buf := &bufferedWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(buf, r.WithContext(ctx))

			if buf.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "error", err)
				}
				buf.flush()
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			hooks.run()
			buf.flush()
		})
	}
}

// bufferedWriter records the status and body instead of sending them.
type bufferedWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.statusCode = code
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	return bw.body.Write(b)
}

func (bw *bufferedWriter) flush() {
	bw.ResponseWriter.WriteHeader(bw.statusCode)
	bw.ResponseWriter.Write(bw.body.Bytes())
}

type txKey struct{}

func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey{}).(*sqlx.Tx)
	return tx
}

type commitHooksKey struct{}

type commitHooks struct {
	fns []func()
}

func (h *commitHooks) run() {
	for _, fn := range h.fns {
		fn()
	}
}

// AfterCommit defers fn until the transaction of the request commits. A
// rollback drops fn. Outside TxMiddleware fn runs immediately.
func AfterCommit(ctx context.Context, fn func()) {
	hooks, ok := ctx.Value(commitHooksKey{}).(*commitHooks)
	if !ok {
		fn()
		return
	}
	hooks.fns = append(hooks.fns, fn)
}
