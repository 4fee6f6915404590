package dependency

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/marginboard/marginboard-manager/internal/entity"
)

type (
	// Records reads and lands integrated sales records. Rows are immutable
	// once computed by ingestion; the engine only ever reads them.
	Records interface {
		// GetIntegratedRecords returns records for a tenant within the
		// inclusive [from, to] day range (nil bound = unbounded), optionally
		// narrowed to product names containing the given substring
		// (case-insensitive).
		GetIntegratedRecords(ctx context.Context, tenantId int, from, to *time.Time, productName string) ([]entity.IntegratedRecord, error)
		// UpsertIntegratedRecords lands a batch of already-parsed rows,
		// replacing existing rows on the (tenant, option, date) key.
		UpsertIntegratedRecords(ctx context.Context, records []entity.IntegratedRecord) error
	}

	// Adjustments reads and lands fake purchase deduction rows.
	Adjustments interface {
		GetAdjustments(ctx context.Context, tenantId int, from, to *time.Time) ([]entity.FakePurchaseAdjustment, error)
		UpsertAdjustment(ctx context.Context, adj entity.FakePurchaseAdjustment) error
	}

	// Repository is the storage dependency consumed by the report service
	// and the HTTP surface.
	Repository interface {
		Records() Records
		Adjustments() Adjustments
		Tx(ctx context.Context, f func(context.Context, Repository) error) error
		TxBegin(ctx context.Context) (Repository, error)
		TxCommit(ctx context.Context) error
		TxRollback(ctx context.Context) error
		Now() time.Time
		InTx() bool
		Ping(ctx context.Context) error
		Close()
		DB() DB
	}

	// DB represents database interface.
	DB interface {
		BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	}
)
