package admission

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careward/careward/internal/pkg/errs"
)

type mockRepo struct {
	admissions map[uuid.UUID]*Admission
}

func newMockRepo() *mockRepo {
	return &mockRepo{admissions: make(map[uuid.UUID]*Admission)}
}

func (m *mockRepo) Create(_ context.Context, a *Admission) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	m.admissions[a.ID] = a
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Admission, error) {
	a, ok := m.admissions[id]
	if !ok {
		return nil, errs.NotFound("admission %s", id)
	}
	return a, nil
}

func (m *mockRepo) List(_ context.Context, status string, limit, offset int) ([]*Admission, int, error) {
	var out []*Admission
	for _, a := range m.admissions {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) Discharge(_ context.Context, id uuid.UUID) (bool, error) {
	a, ok := m.admissions[id]
	if !ok || a.Status != StatusAdmitted {
		return false, nil
	}
	now := time.Now()
	a.Status = StatusDischarged
	a.DischargedAt = &now
	return true, nil
}

func TestCreateAdmissionValidation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	err := svc.Create(ctx, &Admission{AssignedDoctorID: uuid.New()})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for missing patient name, got %v", err)
	}

	err = svc.Create(ctx, &Admission{PatientName: "Jane Roe"})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error for missing doctor, got %v", err)
	}

	a := &Admission{PatientName: "Jane Roe", AssignedDoctorID: uuid.New()}
	if err := svc.Create(ctx, a); err != nil {
		t.Fatalf("create admission: %v", err)
	}
	if a.Status != StatusAdmitted {
		t.Fatalf("expected default status admitted, got %s", a.Status)
	}
}

func TestDischarge(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a := &Admission{PatientName: "Jane Roe", AssignedDoctorID: uuid.New(), Status: StatusAdmitted}
	if err := svc.Create(ctx, a); err != nil {
		t.Fatalf("create admission: %v", err)
	}

	if err := svc.Discharge(ctx, a.ID); err != nil {
		t.Fatalf("discharge: %v", err)
	}

	err := svc.Discharge(ctx, a.ID)
	if !errs.IsConflict(err) {
		t.Fatalf("expected conflict on second discharge, got %v", err)
	}

	err = svc.Discharge(ctx, uuid.New())
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found for unknown admission, got %v", err)
	}
}

func TestIsAdmitted(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a := &Admission{PatientName: "Jane Roe", AssignedDoctorID: uuid.New(), Status: StatusAdmitted}
	if err := svc.Create(ctx, a); err != nil {
		t.Fatalf("create admission: %v", err)
	}

	ok, err := svc.IsAdmitted(ctx, a.ID)
	if err != nil || !ok {
		t.Fatalf("expected admitted, got ok=%v err=%v", ok, err)
	}

	if err := svc.Discharge(ctx, a.ID); err != nil {
		t.Fatalf("discharge: %v", err)
	}
	ok, err = svc.IsAdmitted(ctx, a.ID)
	if err != nil || ok {
		t.Fatalf("expected not admitted after discharge, got ok=%v err=%v", ok, err)
	}
}
