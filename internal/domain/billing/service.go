package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careward/careward/internal/pkg/errs"
)

type Service struct {
	cases Repository
}

func NewService(cases Repository) *Service {
	return &Service{cases: cases}
}

// EnsureCase makes sure the admission has an open billing case. Safe to call
// any number of times; the first call wins and later ones are no-ops.
func (s *Service) EnsureCase(ctx context.Context, admissionID, openedBy uuid.UUID) error {
	created, err := s.cases.EnsureCase(ctx, admissionID, openedBy)
	if err != nil {
		return err
	}
	if created {
		log.Info().
			Str("admission_id", admissionID.String()).
			Str("opened_by", openedBy.String()).
			Msg("billing case opened")
	}
	return nil
}

func (s *Service) GetByAdmission(ctx context.Context, admissionID uuid.UUID) (*BillingCase, error) {
	b, err := s.cases.GetByAdmission(ctx, admissionID)
	if err != nil {
		return nil, errs.NotFound("no billing case for admission %s", admissionID)
	}
	return b, nil
}
