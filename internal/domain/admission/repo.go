package admission

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Admission) error
	GetByID(ctx context.Context, id uuid.UUID) (*Admission, error)
	List(ctx context.Context, status string, limit, offset int) ([]*Admission, int, error)
	// Discharge conditionally marks an admitted admission as discharged.
	// Returns false when the admission was not currently admitted.
	Discharge(ctx context.Context, id uuid.UUID) (bool, error)
}
