package order

import (
	"context"
	"fmt"

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

const orderCols = `id, admission_id, order_type, order_subtype, order_details, frequency, duration,
	special_instructions, status, ordered_by, ordered_at, claimed_by, claimed_at,
	completed_by, completed_at, completion_note, discontinued_by, discontinued_at,
	discontinue_reason, created_at, updated_at`

func scanOrder(row pgx.Row) (*ClinicalOrder, error) {
	var o ClinicalOrder
	err := row.Scan(
		&o.ID, &o.AdmissionID, &o.OrderType, &o.OrderSubtype, &o.OrderDetails,
		&o.Frequency, &o.Duration, &o.SpecialInstructions, &o.Status,
		&o.OrderedBy, &o.OrderedAt, &o.ClaimedBy, &o.ClaimedAt,
		&o.CompletedBy, &o.CompletedAt, &o.CompletionNote,
		&o.DiscontinuedBy, &o.DiscontinuedAt, &o.DiscontinueReason,
		&o.CreatedAt, &o.UpdatedAt,
	)
	return &o, err
}

func (r *repoPG) Create(ctx context.Context, o *ClinicalOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	created, err := scanOrder(r.conn(ctx).QueryRow(ctx, `
		INSERT INTO clinical_order (
			id, admission_id, order_type, order_subtype, order_details,
			frequency, duration, special_instructions, status, ordered_by, ordered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING `+orderCols,
		o.ID, o.AdmissionID, o.OrderType, o.OrderSubtype, o.OrderDetails,
		o.Frequency, o.Duration, o.SpecialInstructions, StatusActive, o.OrderedBy,
	))
	if err != nil {
		return err
	}
	*o = *created
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicalOrder, error) {
	return scanOrder(r.conn(ctx).QueryRow(ctx,
		`SELECT `+orderCols+` FROM clinical_order WHERE id = $1`, id))
}

func (r *repoPG) Claim(ctx context.Context, orderID, actorID uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinical_order
		SET status = $3, claimed_by = $2, claimed_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = $4 AND claimed_by IS NULL`,
		orderID, actorID, StatusInProgress, StatusActive)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) Release(ctx context.Context, orderID, actorID uuid.UUID) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinical_order
		SET status = $3, claimed_by = NULL, claimed_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = $4 AND claimed_by = $2`,
		orderID, actorID, StatusActive, StatusInProgress)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) Complete(ctx context.Context, orderID, actorID uuid.UUID, note *string) (bool, error) {
	// completed_by keeps the claimant's identity; the claim fields themselves
	// are cleared because claimed_by is only ever set while in_progress.
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinical_order
		SET status = $3, completed_by = $2, completed_at = NOW(),
		    completion_note = $5, claimed_by = NULL, claimed_at = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND status = $4 AND claimed_by = $2`,
		orderID, actorID, StatusCompleted, StatusInProgress, note)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) Discontinue(ctx context.Context, orderID, actorID uuid.UUID, reason string) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE clinical_order
		SET status = $3, discontinued_by = $2, discontinued_at = NOW(),
		    discontinue_reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = $4`,
		orderID, actorID, StatusDiscontinued, StatusActive, reason)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repoPG) ListByAdmission(ctx context.Context, admissionID uuid.UUID, status string, limit, offset int) ([]*ClinicalOrder, int, error) {
	where := `admission_id = $1`
	args := []interface{}{admissionID}
	if status != "" {
		where += ` AND status = $2`
		args = append(args, status)
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM clinical_order WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+orderCols+` FROM clinical_order WHERE `+where+`
		ORDER BY CASE status
			WHEN 'in_progress' THEN 0
			WHEN 'active' THEN 1
			WHEN 'completed' THEN 2
			ELSE 3
		END,
		discontinued_at DESC NULLS LAST,
		ordered_at DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*ClinicalOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, o)
	}
	return items, total, rows.Err()
}

func (r *repoPG) AppendEvent(ctx context.Context, e *OrderEvent) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO order_event (id, order_id, event_type, actor_id, from_status, to_status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.OrderID, e.EventType, e.ActorID, e.FromStatus, e.ToStatus, e.Note)
	return err
}

func (r *repoPG) ListEvents(ctx context.Context, orderID uuid.UUID) ([]*OrderEvent, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, order_id, event_type, actor_id, from_status, to_status, note, created_at
		FROM order_event WHERE order_id = $1 ORDER BY created_at`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*OrderEvent
	for rows.Next() {
		var e OrderEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.EventType, &e.ActorID,
			&e.FromStatus, &e.ToStatus, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
