package admission

import (
	"time"

	"github.com/google/uuid"
)

// Admission statuses.
const (
	StatusAdmitted   = "admitted"
	StatusDischarged = "discharged"
)

// Admission maps to the admission table. Clinical orders are scoped to an
// admission and may only be issued while it is still admitted.
type Admission struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PatientName      string     `db:"patient_name" json:"patient_name"`
	AssignedDoctorID uuid.UUID  `db:"assigned_doctor_id" json:"assigned_doctor_id"`
	Status           string     `db:"status" json:"status"`
	Room             *string    `db:"room" json:"room,omitempty"`
	Bed              *string    `db:"bed" json:"bed,omitempty"`
	AdmittedAt       time.Time  `db:"admitted_at" json:"admitted_at"`
	DischargedAt     *time.Time `db:"discharged_at" json:"discharged_at,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// IsAdmitted reports whether the admission is still open.
func (a *Admission) IsAdmitted() bool { return a.Status == StatusAdmitted }
