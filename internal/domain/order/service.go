package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careward/careward/internal/pkg/errs"
	"github.com/careward/careward/internal/platform/db"
)

// AdmissionDirectory is the slice of the admission service the engine needs.
type AdmissionDirectory interface {
	IsAdmitted(ctx context.Context, admissionID uuid.UUID) (bool, error)
	AssignedDoctor(ctx context.Context, admissionID uuid.UUID) (uuid.UUID, error)
}

// BillingEnsurer opens a billing case if the admission has none. It must be
// idempotent: the engine calls it from both the create and complete paths of
// discharge orders.
type BillingEnsurer interface {
	EnsureCase(ctx context.Context, admissionID, openedBy uuid.UUID) error
}

// Service is the transition engine. Every transition is authorized by the
// guard first, then applied as a single conditional update; side effects run
// in the same transaction as the transition that triggers them.
type Service struct {
	orders     Repository
	admissions AdmissionDirectory
	billing    BillingEnsurer
	tx         db.TxRunner
}

func NewService(orders Repository, admissions AdmissionDirectory, billing BillingEnsurer, tx db.TxRunner) *Service {
	return &Service{orders: orders, admissions: admissions, billing: billing, tx: tx}
}

type CreateInput struct {
	AdmissionID         uuid.UUID
	OrderType           string
	OrderSubtype        string
	OrderDetails        *string
	Frequency           *string
	Duration            *string
	SpecialInstructions *string
}

func (s *Service) Create(ctx context.Context, actor Actor, in CreateInput) (*ClinicalOrder, error) {
	orderType := NormalizeType(in.OrderType)
	if !ValidType(orderType) {
		return nil, errs.Validation("unknown order type: %s", in.OrderType)
	}
	subtype := DeriveSubtype(in.OrderSubtype, in.SpecialInstructions)
	if !ValidSubtype(subtype) {
		return nil, errs.Validation("unknown order subtype: %s", in.OrderSubtype)
	}
	// Details are what the executing nurse acts on. Newborn requests carry
	// their payload in the sub-workflow and discharge orders use
	// special_instructions, so only the rest require them.
	if subtype != SubtypeNewbornInfoRequest && orderType != TypeDischarge {
		if in.OrderDetails == nil || *in.OrderDetails == "" {
			return nil, errs.Validation("order_details is required")
		}
	}

	admitted, err := s.admissions.IsAdmitted(ctx, in.AdmissionID)
	if err != nil {
		return nil, err
	}
	if !admitted {
		return nil, errs.NotFound("admission %s is not currently admitted", in.AdmissionID)
	}
	assigned, err := s.admissions.AssignedDoctor(ctx, in.AdmissionID)
	if err != nil {
		return nil, err
	}
	if err := CanCreate(actor, assigned); err != nil {
		return nil, err
	}
	if subtype == SubtypeNewbornInfoRequest {
		if err := CanCreateNewbornRequest(actor); err != nil {
			return nil, err
		}
	}

	o := &ClinicalOrder{
		AdmissionID:         in.AdmissionID,
		OrderType:           orderType,
		OrderSubtype:        subtype,
		OrderDetails:        in.OrderDetails,
		Frequency:           in.Frequency,
		Duration:            in.Duration,
		SpecialInstructions: in.SpecialInstructions,
		Status:              StatusActive,
		OrderedBy:           actor.ID,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.orders.Create(ctx, o); err != nil {
			return err
		}
		if err := s.orders.AppendEvent(ctx, &OrderEvent{
			OrderID:   o.ID,
			EventType: EventCreated,
			ActorID:   actor.ID,
			ToStatus:  StatusActive,
		}); err != nil {
			return err
		}
		if IsDischargeEquivalent(orderType) {
			return s.billing.EnsureCase(ctx, o.AdmissionID, actor.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", o.ID.String()).
		Str("order_type", o.OrderType).
		Str("ordered_by", actor.ID.String()).
		Msg("order created")
	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ClinicalOrder, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, errs.NotFound("order %s", id)
	}
	return o, nil
}

func (s *Service) Claim(ctx context.Context, actor Actor, orderID uuid.UUID) (*ClinicalOrder, error) {
	if err := CanClaim(actor); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		matched, err := s.orders.Claim(ctx, orderID, actor.ID)
		if err != nil {
			return err
		}
		if !matched {
			return s.transitionConflict(ctx, orderID, StatusActive)
		}
		return s.orders.AppendEvent(ctx, &OrderEvent{
			OrderID:    orderID,
			EventType:  EventClaimed,
			ActorID:    actor.ID,
			FromStatus: StatusActive,
			ToStatus:   StatusInProgress,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

func (s *Service) Release(ctx context.Context, actor Actor, orderID uuid.UUID) (*ClinicalOrder, error) {
	o, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := CanRelease(actor, o); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		matched, err := s.orders.Release(ctx, orderID, actor.ID)
		if err != nil {
			return err
		}
		if !matched {
			return s.transitionConflict(ctx, orderID, StatusInProgress)
		}
		return s.orders.AppendEvent(ctx, &OrderEvent{
			OrderID:    orderID,
			EventType:  EventReleased,
			ActorID:    actor.ID,
			FromStatus: StatusInProgress,
			ToStatus:   StatusActive,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

// Complete terminates an in-progress order held by the actor. Orders
// subtyped as newborn information requests are refused here: their only
// legal completion path is the newborn record submission.
func (s *Service) Complete(ctx context.Context, actor Actor, orderID uuid.UUID, note *string) (*ClinicalOrder, error) {
	o, err := s.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.OrderSubtype == SubtypeNewbornInfoRequest {
		return nil, errs.Forbidden("order %s is a newborn information request and must be completed through the newborn record workflow", orderID)
	}
	if err := CanComplete(actor, o); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		matched, err := s.orders.Complete(ctx, orderID, actor.ID, note)
		if err != nil {
			return err
		}
		if !matched {
			return s.transitionConflict(ctx, orderID, StatusInProgress)
		}
		if err := s.orders.AppendEvent(ctx, &OrderEvent{
			OrderID:    orderID,
			EventType:  EventCompleted,
			ActorID:    actor.ID,
			FromStatus: StatusInProgress,
			ToStatus:   StatusCompleted,
			Note:       note,
		}); err != nil {
			return err
		}
		if IsDischargeEquivalent(o.OrderType) {
			return s.billing.EnsureCase(ctx, o.AdmissionID, actor.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", orderID.String()).
		Str("completed_by", actor.ID.String()).
		Msg("order completed")
	return s.Get(ctx, orderID)
}

// Discontinue cancels an order that is still active. A claimed order cannot
// be discontinued; the claimant must release it first. Product has not
// confirmed whether prescribers should be able to discontinue claimed
// orders, so the narrow rule stands.
func (s *Service) Discontinue(ctx context.Context, actor Actor, orderID uuid.UUID, reason string) (*ClinicalOrder, error) {
	if reason == "" {
		return nil, errs.Validation("discontinue reason is required")
	}
	if err := CanDiscontinue(actor); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		matched, err := s.orders.Discontinue(ctx, orderID, actor.ID, reason)
		if err != nil {
			return err
		}
		if !matched {
			return s.transitionConflict(ctx, orderID, StatusActive)
		}
		return s.orders.AppendEvent(ctx, &OrderEvent{
			OrderID:    orderID,
			EventType:  EventDiscontinued,
			ActorID:    actor.ID,
			FromStatus: StatusActive,
			ToStatus:   StatusDiscontinued,
			Note:       &reason,
		})
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, orderID)
}

func (s *Service) ListByAdmission(ctx context.Context, admissionID uuid.UUID, status string, limit, offset int) ([]*ClinicalOrder, int, error) {
	if status != "" {
		switch status {
		case StatusActive, StatusInProgress, StatusCompleted, StatusDiscontinued:
		default:
			return nil, 0, errs.Validation("unknown status filter: %s", status)
		}
	}
	return s.orders.ListByAdmission(ctx, admissionID, status, limit, offset)
}

func (s *Service) ListEvents(ctx context.Context, orderID uuid.UUID) ([]*OrderEvent, error) {
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}
	return s.orders.ListEvents(ctx, orderID)
}

// transitionConflict re-reads the order and reports expected-vs-actual
// state. Returning it from inside RunInTx rolls the transaction back.
func (s *Service) transitionConflict(ctx context.Context, orderID uuid.UUID, expected string) error {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return errs.NotFound("order %s", orderID)
	}
	if o.Status == expected && o.ClaimedBy != nil {
		return errs.Conflict("order %s is %s and claimed by %s", orderID, o.Status, *o.ClaimedBy)
	}
	return errs.Conflict("order %s is %s, expected %s", orderID, o.Status, expected)
}
