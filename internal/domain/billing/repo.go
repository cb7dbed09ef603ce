package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// EnsureCase opens a billing case for the admission if none exists yet.
	// Calling it again for the same admission is a no-op; it reports whether
	// a new case was created.
	EnsureCase(ctx context.Context, admissionID, openedBy uuid.UUID) (bool, error)
	GetByAdmission(ctx context.Context, admissionID uuid.UUID) (*BillingCase, error)
}
