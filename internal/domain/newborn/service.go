package newborn

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careward/careward/internal/domain/order"
	"github.com/careward/careward/internal/pkg/errs"
	"github.com/careward/careward/internal/platform/db"
)

var validate = validator.New()

// Service is the specialized completion path for newborn-information
// requests. Submitting the record claims the order if nobody holds it yet,
// inserts the birth certificate, and completes the order, all in one
// transaction.
type Service struct {
	records Repository
	orders  order.Repository
	tx      db.TxRunner
}

func NewService(records Repository, orders order.Repository, tx db.TxRunner) *Service {
	return &Service{records: records, orders: orders, tx: tx}
}

func (s *Service) Submit(ctx context.Context, actor order.Actor, orderID uuid.UUID, data BirthData) (*BirthCertificateRecord, error) {
	if err := validate.Struct(data); err != nil {
		return nil, errs.Validation("invalid birth data: %v", err)
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, errs.NotFound("order %s", orderID)
	}
	if o.OrderSubtype != order.SubtypeNewbornInfoRequest {
		return nil, errs.Validation("order %s is not a newborn information request", orderID)
	}

	switch o.Status {
	case order.StatusActive:
		if err := order.CanClaim(actor); err != nil {
			return nil, err
		}
	case order.StatusInProgress:
		if !o.IsClaimedBy(actor.ID) {
			return nil, errs.Forbidden("order %s is claimed by another actor", orderID)
		}
	default:
		return nil, errs.Conflict("order %s is %s and can no longer accept a record", orderID, o.Status)
	}

	rec := &BirthCertificateRecord{
		OrderID:       orderID,
		AdmissionID:   o.AdmissionID,
		MotherName:    data.MotherName,
		FatherName:    data.FatherName,
		NewbornSex:    data.NewbornSex,
		BornAt:        data.BornAt,
		PlaceOfBirth:  data.PlaceOfBirth,
		WeightGrams:   data.WeightGrams,
		LengthCm:      data.LengthCm,
		AttendantName: data.AttendantName,
		Remarks:       data.Remarks,
		SubmittedBy:   actor.ID,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if o.Status == order.StatusActive {
			matched, err := s.orders.Claim(ctx, orderID, actor.ID)
			if err != nil {
				return err
			}
			if !matched {
				return errs.Conflict("order %s was claimed by another actor", orderID)
			}
			if err := s.orders.AppendEvent(ctx, &order.OrderEvent{
				OrderID:    orderID,
				EventType:  order.EventClaimed,
				ActorID:    actor.ID,
				FromStatus: order.StatusActive,
				ToStatus:   order.StatusInProgress,
			}); err != nil {
				return err
			}
		}

		if err := s.records.Create(ctx, rec); err != nil {
			return err
		}

		note := CompletionNote
		matched, err := s.orders.Complete(ctx, orderID, actor.ID, &note)
		if err != nil {
			return err
		}
		if !matched {
			return errs.Conflict("order %s changed state before the record could complete it", orderID)
		}
		return s.orders.AppendEvent(ctx, &order.OrderEvent{
			OrderID:    orderID,
			EventType:  order.EventCompleted,
			ActorID:    actor.ID,
			FromStatus: order.StatusInProgress,
			ToStatus:   order.StatusCompleted,
			Note:       &note,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", orderID.String()).
		Str("submitted_by", actor.ID.String()).
		Msg("birth certificate record submitted")
	return rec, nil
}

func (s *Service) GetByOrder(ctx context.Context, orderID uuid.UUID) (*BirthCertificateRecord, error) {
	rec, err := s.records.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, errs.NotFound("no birth certificate record for order %s", orderID)
	}
	return rec, nil
}
