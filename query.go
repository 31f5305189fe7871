package rivulet

import (
	"context"

	"github.com/jackc/pgx/v5"
)

type (
	// Querier is the slice of the pgx API FromQuery needs. *pgx.Conn and
	// *pgxpool.Pool both satisfy it
	Querier interface {
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	}

	// RowScanner produces one stream value from the current row
	RowScanner[T any] func(pgx.Rows) (T, error)
)

// FromQuery creates a cold Observable over a SQL result set: each
// subscription runs the query afresh and emits one scanned value per
// row, synchronously, then completes. Query or scan failures, and any
// deferred rows error, surface as Error. The rows are always closed
// before the terminal signal
func FromQuery[T any](
	ctx context.Context, q Querier, scan RowScanner[T],
	sql string, args ...any,
) Observable[T] {
	return New(func(obs Observer[T]) Cancel {
		rows, err := q.Query(ctx, sql, args...)
		if err != nil {
			obs.Error(err)
			return nil
		}

		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				rows.Close()
				obs.Error(err)
				return nil
			}
			obs.Next(v)
		}
		rows.Close()

		if err := rows.Err(); err != nil {
			obs.Error(err)
			return nil
		}
		obs.Complete()
		return nil
	})
}
