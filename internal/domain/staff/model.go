package staff

import (
	"time"

	"github.com/google/uuid"
)

// Staff roles. Doctors prescribe; nurses and lab technicians execute.
const (
	RoleDoctor        = "doctor"
	RoleNurse         = "nurse"
	RoleLabTechnician = "lab_technician"
	RoleAdmin         = "admin"
)

// Staff maps to the staff table.
type Staff struct {
	ID         uuid.UUID `db:"id" json:"id"`
	FullName   string    `db:"full_name" json:"full_name"`
	Role       string    `db:"role" json:"role"`
	Department string    `db:"department" json:"department"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

var validRoles = map[string]bool{
	RoleDoctor:        true,
	RoleNurse:         true,
	RoleLabTechnician: true,
	RoleAdmin:         true,
}

// ValidRole reports whether r is a known staff role.
func ValidRole(r string) bool { return validRoles[r] }

// ExecutingRole reports whether r may claim and execute clinical orders.
func ExecutingRole(r string) bool {
	return r == RoleNurse || r == RoleLabTechnician
}
