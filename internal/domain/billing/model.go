package billing

import (
	"time"

	"github.com/google/uuid"
)

// Billing case statuses.
const (
	StatusUnpaid = "unpaid"
	StatusPaid   = "paid"
	StatusVoided = "voided"
)

// BillingCase is the financial container opened for an admission when its
// discharge process starts. There is at most one case per admission; the
// admission id doubles as the primary key.
type BillingCase struct {
	AdmissionID uuid.UUID `db:"admission_id" json:"admission_id"`
	Status      string    `db:"status" json:"status"`
	TotalCents  int64     `db:"total_cents" json:"total_cents"`
	PaidCents   int64     `db:"paid_cents" json:"paid_cents"`
	OpenedBy    uuid.UUID `db:"opened_by" json:"opened_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
