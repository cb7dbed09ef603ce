package admission

import (
	"context"

	"github.com/google/uuid"

	"github.com/careward/careward/internal/pkg/errs"
)

// Service owns admission records and exposes the two collaborator contracts
// the order engine depends on: IsAdmitted and AssignedDoctor.
type Service struct {
	admissions Repository
}

func NewService(admissions Repository) *Service {
	return &Service{admissions: admissions}
}

func (s *Service) Create(ctx context.Context, a *Admission) error {
	if a.PatientName == "" {
		return errs.Validation("patient_name is required")
	}
	if a.AssignedDoctorID == uuid.Nil {
		return errs.Validation("assigned_doctor_id is required")
	}
	if a.Status == "" {
		a.Status = StatusAdmitted
	}
	if a.Status != StatusAdmitted && a.Status != StatusDischarged {
		return errs.Validation("invalid admission status: %s", a.Status)
	}
	return s.admissions.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Admission, error) {
	a, err := s.admissions.GetByID(ctx, id)
	if err != nil {
		return nil, errs.NotFound("admission %s", id)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, status string, limit, offset int) ([]*Admission, int, error) {
	return s.admissions.List(ctx, status, limit, offset)
}

// Discharge closes an admitted admission. Discharging twice is a conflict.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID) error {
	ok, err := s.admissions.Discharge(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		a, err := s.admissions.GetByID(ctx, id)
		if err != nil {
			return errs.NotFound("admission %s", id)
		}
		return errs.Conflict("admission %s is already %s", id, a.Status)
	}
	return nil
}

// IsAdmitted reports whether the admission exists and is currently open.
func (s *Service) IsAdmitted(ctx context.Context, id uuid.UUID) (bool, error) {
	a, err := s.admissions.GetByID(ctx, id)
	if err != nil {
		return false, errs.NotFound("admission %s", id)
	}
	return a.IsAdmitted(), nil
}

// AssignedDoctor returns the staff id of the admission's assigned doctor.
func (s *Service) AssignedDoctor(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	a, err := s.admissions.GetByID(ctx, id)
	if err != nil {
		return uuid.Nil, errs.NotFound("admission %s", id)
	}
	return a.AssignedDoctorID, nil
}
