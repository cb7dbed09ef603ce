package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careward/careward/internal/pkg/errs"
)

type mockRepo struct {
	cases map[uuid.UUID]*BillingCase
}

func newMockRepo() *mockRepo {
	return &mockRepo{cases: make(map[uuid.UUID]*BillingCase)}
}

func (m *mockRepo) EnsureCase(_ context.Context, admissionID, openedBy uuid.UUID) (bool, error) {
	if _, ok := m.cases[admissionID]; ok {
		return false, nil
	}
	m.cases[admissionID] = &BillingCase{
		AdmissionID: admissionID,
		Status:      StatusUnpaid,
		OpenedBy:    openedBy,
		CreatedAt:   time.Now(),
	}
	return true, nil
}

func (m *mockRepo) GetByAdmission(_ context.Context, admissionID uuid.UUID) (*BillingCase, error) {
	b, ok := m.cases[admissionID]
	if !ok {
		return nil, errs.NotFound("no billing case for admission %s", admissionID)
	}
	return b, nil
}

func TestEnsureCaseIdempotent(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	admissionID := uuid.New()
	first := uuid.New()
	second := uuid.New()

	if err := svc.EnsureCase(ctx, admissionID, first); err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if err := svc.EnsureCase(ctx, admissionID, second); err != nil {
		t.Fatalf("second ensure: %v", err)
	}

	b, err := svc.GetByAdmission(ctx, admissionID)
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if b.OpenedBy != first {
		t.Fatalf("expected original opener retained, got %s", b.OpenedBy)
	}
	if b.Status != StatusUnpaid {
		t.Fatalf("expected new case unpaid, got %s", b.Status)
	}
	if len(repo.cases) != 1 {
		t.Fatalf("expected exactly one case, got %d", len(repo.cases))
	}
}

func TestGetByAdmissionNotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.GetByAdmission(context.Background(), uuid.New())
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
