package order

import (
	"github.com/google/uuid"

	"github.com/careward/careward/internal/domain/staff"
	"github.com/careward/careward/internal/pkg/errs"
)

// Departments whose doctors may issue newborn-information requests.
var specialistDepartments = map[string]bool{
	"obstetrics": true,
	"pediatrics": true,
}

// The guard is pure: every check is a function of (actor, order, operation)
// only. It never touches storage and never mutates anything; transition
// preconditions are enforced separately, at write time.

// CanCreate requires the actor to be the admission's assigned doctor, not
// merely any doctor.
func CanCreate(actor Actor, assignedDoctor uuid.UUID) error {
	if actor.Role != staff.RoleDoctor {
		return errs.Forbidden("only doctors may create orders")
	}
	if actor.ID != assignedDoctor {
		return errs.Forbidden("actor %s is not the admission's assigned doctor", actor.ID)
	}
	return nil
}

// CanCreateNewbornRequest additionally requires a specialist department.
func CanCreateNewbornRequest(actor Actor) error {
	if !specialistDepartments[actor.Department] {
		return errs.Forbidden("newborn information requests require an obstetrics or pediatrics doctor")
	}
	return nil
}

func CanClaim(actor Actor) error {
	if !staff.ExecutingRole(actor.Role) {
		return errs.Forbidden("only nurses and lab technicians may claim orders")
	}
	return nil
}

// CanRelease requires the executing role and current ownership of the claim.
func CanRelease(actor Actor, o *ClinicalOrder) error {
	if !staff.ExecutingRole(actor.Role) {
		return errs.Forbidden("only nurses and lab technicians may release orders")
	}
	if o.Status == StatusInProgress && !o.IsClaimedBy(actor.ID) {
		return errs.Forbidden("order %s is claimed by another actor", o.ID)
	}
	return nil
}

// CanComplete mirrors CanRelease: executing role plus ownership.
func CanComplete(actor Actor, o *ClinicalOrder) error {
	if !staff.ExecutingRole(actor.Role) {
		return errs.Forbidden("only nurses and lab technicians may complete orders")
	}
	if o.Status == StatusInProgress && !o.IsClaimedBy(actor.ID) {
		return errs.Forbidden("order %s is claimed by another actor", o.ID)
	}
	return nil
}

// CanDiscontinue requires a prescribing role. There is no ownership check:
// any doctor with access to the admission may discontinue an active order.
func CanDiscontinue(actor Actor) error {
	if actor.Role != staff.RoleDoctor {
		return errs.Forbidden("only doctors may discontinue orders")
	}
	return nil
}
