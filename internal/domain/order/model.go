package order

import (
	"time"

	"github.com/google/uuid"
)

// Order types.
const (
	TypeMedication = "medication"
	TypeDiagnostic = "diagnostic"
	TypeDiet       = "diet"
	TypeActivity   = "activity"
	TypeMonitoring = "monitoring"
	TypeLabTest    = "lab_test"
	TypeDischarge  = "discharge"
	TypeOther      = "other"
)

// Order subtypes. Subtyped orders route through a specialized completion
// path instead of the generic one.
const (
	SubtypeNone               = "none"
	SubtypeNewbornInfoRequest = "newborn_info_request"
	SubtypeRoomTransfer       = "room_transfer"
)

// Order statuses.
const (
	StatusActive       = "active"
	StatusInProgress   = "in_progress"
	StatusCompleted    = "completed"
	StatusDiscontinued = "discontinued"
)

// Legacy special-instruction literals that older clients still send instead
// of a typed subtype.
const (
	legacyTagNewborn      = "NEWBORN_INFO_REQUEST"
	legacyTagRoomTransfer = "ROOM_TRANSFER"
)

var validTypes = map[string]bool{
	TypeMedication: true, TypeDiagnostic: true, TypeDiet: true,
	TypeActivity: true, TypeMonitoring: true, TypeLabTest: true,
	TypeDischarge: true, TypeOther: true,
}

var validSubtypes = map[string]bool{
	SubtypeNone: true, SubtypeNewbornInfoRequest: true, SubtypeRoomTransfer: true,
}

// NormalizeType maps the legacy empty order type to discharge.
func NormalizeType(t string) string {
	if t == "" {
		return TypeDischarge
	}
	return t
}

func ValidType(t string) bool    { return validTypes[t] }
func ValidSubtype(s string) bool { return validSubtypes[s] }

// DeriveSubtype resolves the effective subtype from an explicit value and
// the legacy special-instructions tag. An explicit subtype wins.
func DeriveSubtype(subtype string, specialInstructions *string) string {
	if subtype != "" && subtype != SubtypeNone {
		return subtype
	}
	if specialInstructions != nil {
		switch *specialInstructions {
		case legacyTagNewborn:
			return SubtypeNewbornInfoRequest
		case legacyTagRoomTransfer:
			return SubtypeRoomTransfer
		}
	}
	return SubtypeNone
}

// IsDischargeEquivalent reports whether the type triggers the billing-case
// side effect. Covers the legacy empty type.
func IsDischargeEquivalent(t string) bool {
	return t == TypeDischarge || t == ""
}

// legalTransitions is the complete state machine. completed and discontinued
// are terminal.
var legalTransitions = map[string]map[string]bool{
	StatusActive: {
		StatusInProgress:   true,
		StatusDiscontinued: true,
	},
	StatusInProgress: {
		StatusActive:    true,
		StatusCompleted: true,
	},
}

// CanTransition reports whether from -> to is a legal state change.
func CanTransition(from, to string) bool {
	return legalTransitions[from][to]
}

// Actor is the identity every engine call is made on behalf of. It is
// always passed explicitly; there is no ambient current-user state.
type Actor struct {
	ID         uuid.UUID
	Role       string
	Department string
}

// ClinicalOrder maps to the clinical_order table. Rows are never deleted;
// terminal orders stay as the audit record of the admission.
type ClinicalOrder struct {
	ID                  uuid.UUID  `db:"id" json:"id"`
	AdmissionID         uuid.UUID  `db:"admission_id" json:"admission_id"`
	OrderType           string     `db:"order_type" json:"order_type"`
	OrderSubtype        string     `db:"order_subtype" json:"order_subtype"`
	OrderDetails        *string    `db:"order_details" json:"order_details,omitempty"`
	Frequency           *string    `db:"frequency" json:"frequency,omitempty"`
	Duration            *string    `db:"duration" json:"duration,omitempty"`
	SpecialInstructions *string    `db:"special_instructions" json:"special_instructions,omitempty"`
	Status              string     `db:"status" json:"status"`
	OrderedBy           uuid.UUID  `db:"ordered_by" json:"ordered_by"`
	OrderedAt           time.Time  `db:"ordered_at" json:"ordered_at"`
	ClaimedBy           *uuid.UUID `db:"claimed_by" json:"claimed_by,omitempty"`
	ClaimedAt           *time.Time `db:"claimed_at" json:"claimed_at,omitempty"`
	CompletedBy         *uuid.UUID `db:"completed_by" json:"completed_by,omitempty"`
	CompletedAt         *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CompletionNote      *string    `db:"completion_note" json:"completion_note,omitempty"`
	DiscontinuedBy      *uuid.UUID `db:"discontinued_by" json:"discontinued_by,omitempty"`
	DiscontinuedAt      *time.Time `db:"discontinued_at" json:"discontinued_at,omitempty"`
	DiscontinueReason   *string    `db:"discontinue_reason" json:"discontinue_reason,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// IsClaimedBy reports whether actorID currently holds the claim.
func (o *ClinicalOrder) IsClaimedBy(actorID uuid.UUID) bool {
	return o.ClaimedBy != nil && *o.ClaimedBy == actorID
}

// Event types recorded in the audit trail.
const (
	EventCreated      = "created"
	EventClaimed      = "claimed"
	EventReleased     = "released"
	EventCompleted    = "completed"
	EventDiscontinued = "discontinued"
)

// OrderEvent is one entry in an order's audit trail: who moved it, from
// which status to which, and when.
type OrderEvent struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OrderID    uuid.UUID `db:"order_id" json:"order_id"`
	EventType  string    `db:"event_type" json:"event_type"`
	ActorID    uuid.UUID `db:"actor_id" json:"actor_id"`
	FromStatus string    `db:"from_status" json:"from_status"`
	ToStatus   string    `db:"to_status" json:"to_status"`
	Note       *string   `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
