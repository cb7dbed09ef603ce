package newborn

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create inserts the record. The order_id unique constraint makes the
	// write-once guarantee: a second insert for the same order fails.
	Create(ctx context.Context, r *BirthCertificateRecord) error
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*BirthCertificateRecord, error)
}
