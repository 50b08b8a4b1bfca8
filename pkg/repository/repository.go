// Package repository holds the generic query helpers the domain
// repositories share.
package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier reads rows. *sql.DB, *sql.Tx and *sql.Conn satisfy it.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Executor runs statements that return no rows.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// TxBeginner opens transactions. *sql.DB and *sql.Conn satisfy it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Scanner is the common surface of *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc reads one entity from a row.
type ScanFunc[T any] func(Scanner) (T, error)

// Pager builds the count and page statements of one filtered query.
// *query.Builder implements it.
type Pager interface {
	BuildCount() (string, []any)
	BuildPage(page, pageSize int) (string, []any)
}

// WithTx runs fn inside a transaction, committing when fn succeeds and
// rolling back otherwise. Errors from fn are returned unwrapped so
// callers can match sentinel errors.
func WithTx[T any](ctx context.Context, db TxBeginner, fn func(tx *sql.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	out, err := fn(tx)
	if err != nil {
		return zero, err
	}
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit tx: %w", err)
	}
	return out, nil
}

// QueryOne scans the single row a query returns. A missing row yields
// sql.ErrNoRows from the scan.
func QueryOne[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) (T, error) {
	return scan(q.QueryRowContext(ctx, query, args...))
}

// QueryMany scans every row a query returns. The result is never nil.
func QueryMany[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// QueryPage counts the rows p matches and loads the requested page.
// The page query is skipped when the page starts past the last row.
func QueryPage[T any](ctx context.Context, q Querier, p Pager, page, pageSize int, scan ScanFunc[T]) ([]T, int, error) {
	countSQL, countArgs := p.BuildCount()

	var total int
	if err := q.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	if total == 0 || (page-1)*pageSize >= total {
		return []T{}, total, nil
	}

	pageSQL, pageArgs := p.BuildPage(page, pageSize)
	items, err := QueryMany(ctx, q, pageSQL, pageArgs, scan)
	if err != nil {
		return nil, 0, fmt.Errorf("page: %w", err)
	}
	return items, total, nil
}

// ExecExpectOne runs a statement that must touch at least one row and
// reports sql.ErrNoRows when it touched none.
func ExecExpectOne(ctx context.Context, e Executor, query string, args ...any) error {
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
