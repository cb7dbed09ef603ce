package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careward/careward/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const caseCols = `admission_id, status, total_cents, paid_cents, opened_by, created_at, updated_at`

func scanCase(row pgx.Row) (*BillingCase, error) {
	var b BillingCase
	err := row.Scan(&b.AdmissionID, &b.Status, &b.TotalCents, &b.PaidCents, &b.OpenedBy, &b.CreatedAt, &b.UpdatedAt)
	return &b, err
}

// EnsureCase relies on the admission_id primary key: concurrent callers race
// on the insert and exactly one wins, the rest hit ON CONFLICT DO NOTHING.
func (r *repoPG) EnsureCase(ctx context.Context, admissionID, openedBy uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO billing_case (admission_id, status, opened_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (admission_id) DO NOTHING`,
		admissionID, StatusUnpaid, openedBy)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) GetByAdmission(ctx context.Context, admissionID uuid.UUID) (*BillingCase, error) {
	return scanCase(r.conn(ctx).QueryRow(ctx,
		`SELECT `+caseCols+` FROM billing_case WHERE admission_id = $1`, admissionID))
}
