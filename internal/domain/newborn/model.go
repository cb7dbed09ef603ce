package newborn

import (
	"time"

	"github.com/google/uuid"
)

// CompletionNote is stamped on the order when the record is submitted. It is
// fixed; clients cannot override it.
const CompletionNote = "Newborn information submitted to records"

// BirthData is the structured payload the sub-workflow collects before it
// writes anything.
type BirthData struct {
	MotherName    string    `json:"mother_name" validate:"required"`
	FatherName    *string   `json:"father_name" validate:"omitempty,min=1"`
	NewbornSex    string    `json:"newborn_sex" validate:"required,oneof=male female undetermined"`
	BornAt        time.Time `json:"born_at" validate:"required"`
	PlaceOfBirth  string    `json:"place_of_birth" validate:"required"`
	WeightGrams   *int      `json:"weight_grams" validate:"omitempty,gt=0"`
	LengthCm      *float64  `json:"length_cm" validate:"omitempty,gt=0"`
	AttendantName *string   `json:"attendant_name" validate:"omitempty,min=1"`
	Remarks       *string   `json:"remarks"`
}

// BirthCertificateRecord is write-once and linked 1:1 to the order that
// requested it.
type BirthCertificateRecord struct {
	ID            uuid.UUID `db:"id" json:"id"`
	OrderID       uuid.UUID `db:"order_id" json:"order_id"`
	AdmissionID   uuid.UUID `db:"admission_id" json:"admission_id"`
	MotherName    string    `db:"mother_name" json:"mother_name"`
	FatherName    *string   `db:"father_name" json:"father_name,omitempty"`
	NewbornSex    string    `db:"newborn_sex" json:"newborn_sex"`
	BornAt        time.Time `db:"born_at" json:"born_at"`
	PlaceOfBirth  string    `db:"place_of_birth" json:"place_of_birth"`
	WeightGrams   *int      `db:"weight_grams" json:"weight_grams,omitempty"`
	LengthCm      *float64  `db:"length_cm" json:"length_cm,omitempty"`
	AttendantName *string   `db:"attendant_name" json:"attendant_name,omitempty"`
	Remarks       *string   `db:"remarks" json:"remarks,omitempty"`
	SubmittedBy   uuid.UUID `db:"submitted_by" json:"submitted_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
