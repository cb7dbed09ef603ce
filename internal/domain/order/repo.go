package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the order store. Every transition method is a conditional
// update: the precondition is part of the write predicate and the boolean
// result reports whether the row matched. A false result with a nil error
// means the stored state did not satisfy the precondition.
type Repository interface {
	Create(ctx context.Context, o *ClinicalOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClinicalOrder, error)

	// Claim matches only status=active AND claimed_by IS NULL, so of N
	// concurrent attempts exactly one can succeed.
	Claim(ctx context.Context, orderID, actorID uuid.UUID) (bool, error)
	// Release matches only status=in_progress AND claimed_by=actorID.
	Release(ctx context.Context, orderID, actorID uuid.UUID) (bool, error)
	// Complete matches only status=in_progress AND claimed_by=actorID.
	Complete(ctx context.Context, orderID, actorID uuid.UUID, note *string) (bool, error)
	// Discontinue matches only status=active.
	Discontinue(ctx context.Context, orderID, actorID uuid.UUID, reason string) (bool, error)

	// ListByAdmission surfaces in_progress before active, then completed,
	// with discontinued history last ordered by discontinuation time
	// descending.
	ListByAdmission(ctx context.Context, admissionID uuid.UUID, status string, limit, offset int) ([]*ClinicalOrder, int, error)

	AppendEvent(ctx context.Context, e *OrderEvent) error
	ListEvents(ctx context.Context, orderID uuid.UUID) ([]*OrderEvent, error)
}
