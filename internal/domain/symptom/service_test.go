package symptom

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matricare/matricare/internal/domain/risk"
	"github.com/matricare/matricare/internal/platform/sms"
)

type mockRepo struct {
	records   []*Record
	createErr error
}

func (m *mockRepo) Create(_ context.Context, rec *Record) error {
	if m.createErr != nil {
		return m.createErr
	}
	rec.ID = uuid.New()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockRepo) Latest(_ context.Context, _ uuid.UUID) (*Record, error) {
	if len(m.records) == 0 {
		return nil, nil
	}
	return m.records[len(m.records)-1], nil
}

func (m *mockRepo) ListByUser(_ context.Context, _ uuid.UUID, limit, offset int) ([]*Record, int, error) {
	return m.records, len(m.records), nil
}

type mockUserContext struct {
	month    int
	monthErr error
	contacts []string
}

func (m *mockUserContext) PregnancyMonth(_ context.Context, _ uuid.UUID) (int, error) {
	return m.month, m.monthErr
}

func (m *mockUserContext) EmergencyContacts(_ context.Context, _ uuid.UUID) ([]string, error) {
	return m.contacts, nil
}

type mockMovementContext struct {
	hasMovement bool
	count       int
	found       bool
	err         error
}

func (m *mockMovementContext) Today(_ context.Context, _ uuid.UUID) (bool, int, bool, error) {
	return m.hasMovement, m.count, m.found, m.err
}

// recordingDispatcher captures outgoing messages.
type recordingDispatcher struct {
	numbers  []string
	messages []string
	fail     bool
}

func (d *recordingDispatcher) Send(_ context.Context, numbers []string, message string) []sms.DeliveryResult {
	d.numbers = append(d.numbers, numbers...)
	d.messages = append(d.messages, message)
	results := make([]sms.DeliveryResult, 0, len(numbers))
	for _, n := range numbers {
		r := sms.DeliveryResult{Recipient: n, Delivered: !d.fail}
		if d.fail {
			r.Error = "provider down"
		}
		results = append(results, r)
	}
	return results
}

func newTestService(repo Repository, users UserContext, movements MovementContext, d sms.Dispatcher) *Service {
	return NewService(repo, users, movements, risk.DefaultClassifier(), d, zerolog.Nop())
}

func TestAdd_PersistsVerdictVerbatim(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, &mockUserContext{month: 3}, &mockMovementContext{}, &recordingDispatcher{})

	rec, err := svc.Add(context.Background(), uuid.New(), "  mild headache  ")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if rec.Symptom != "mild headache" {
		t.Errorf("Symptom = %q, want trimmed text", rec.Symptom)
	}
	if rec.Risk != risk.LevelMedium {
		t.Errorf("Risk = %s, want Medium for headache in month 3", rec.Risk)
	}
	if rec.Advice == "" {
		t.Error("Advice must be persisted with the record")
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 persisted record, got %d", len(repo.records))
	}
}

func TestAdd_EmptyTextRejected(t *testing.T) {
	svc := newTestService(&mockRepo{}, &mockUserContext{month: 1}, &mockMovementContext{}, &recordingDispatcher{})

	if _, err := svc.Add(context.Background(), uuid.New(), "   "); err == nil {
		t.Fatal("expected error for blank symptom text")
	}
}

func TestAdd_UsesMovementContext(t *testing.T) {
	repo := &mockRepo{}
	movements := &mockMovementContext{hasMovement: false, count: 0, found: true}
	svc := newTestService(repo, &mockUserContext{month: 2}, movements, &recordingDispatcher{})

	rec, err := svc.Add(context.Background(), uuid.New(), "feeling okay")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if rec.Risk != risk.LevelHigh {
		t.Errorf("Risk = %s, want High when today's check-in reports no movement", rec.Risk)
	}
}

func TestAdd_EscalatesOnHigh(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	users := &mockUserContext{month: 5, contacts: []string{"9111111111", "9222222222"}}
	svc := newTestService(&mockRepo{}, users, &mockMovementContext{}, dispatcher)

	if _, err := svc.Add(context.Background(), uuid.New(), "heavy bleeding"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(dispatcher.numbers) != 2 {
		t.Fatalf("expected SMS to 2 contacts, got %d", len(dispatcher.numbers))
	}
	if len(dispatcher.messages) != 1 || dispatcher.messages[0] == "" {
		t.Error("expected the advice text to be dispatched")
	}
}

func TestAdd_NoEscalationBelowHigh(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	users := &mockUserContext{month: 2, contacts: []string{"9111111111"}}
	svc := newTestService(&mockRepo{}, users, &mockMovementContext{}, dispatcher)

	if _, err := svc.Add(context.Background(), uuid.New(), "nausea"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if len(dispatcher.numbers) != 0 {
		t.Errorf("Medium verdict must not escalate, sent to %v", dispatcher.numbers)
	}
}

func TestAdd_DispatchFailureDoesNotFailSave(t *testing.T) {
	repo := &mockRepo{}
	dispatcher := &recordingDispatcher{fail: true}
	users := &mockUserContext{month: 8, contacts: []string{"9111111111"}}
	svc := newTestService(repo, users, &mockMovementContext{}, dispatcher)

	rec, err := svc.Add(context.Background(), uuid.New(), "severe pain")
	if err != nil {
		t.Fatalf("Add must succeed even when SMS fails: %v", err)
	}
	if rec == nil || len(repo.records) != 1 {
		t.Fatal("record must be persisted despite dispatch failure")
	}
}

func TestAdd_ContextFailureFallsBackToDefaults(t *testing.T) {
	repo := &mockRepo{}
	users := &mockUserContext{monthErr: errors.New("db down")}
	movements := &mockMovementContext{err: errors.New("db down")}
	svc := newTestService(repo, users, movements, &recordingDispatcher{})

	rec, err := svc.Add(context.Background(), uuid.New(), "nausea")
	if err != nil {
		t.Fatalf("Add must tolerate context lookup failures: %v", err)
	}
	// With the default month 1 a medium symptom stays Medium.
	if rec.Risk != risk.LevelMedium {
		t.Errorf("Risk = %s, want Medium under default context", rec.Risk)
	}
}

func TestAdd_RepoErrorPropagates(t *testing.T) {
	repo := &mockRepo{createErr: errors.New("insert failed")}
	svc := newTestService(repo, &mockUserContext{month: 1}, &mockMovementContext{}, &recordingDispatcher{})

	if _, err := svc.Add(context.Background(), uuid.New(), "nausea"); err == nil {
		t.Fatal("expected repository error to propagate")
	}
}

func TestLatestVerdict(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, &mockUserContext{month: 1}, &mockMovementContext{}, &recordingDispatcher{})

	v, err := svc.LatestVerdict(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("LatestVerdict returned error: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil verdict with no history, got %+v", v)
	}

	if _, err := svc.Add(context.Background(), uuid.New(), "vomiting"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	v, err = svc.LatestVerdict(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("LatestVerdict returned error: %v", err)
	}
	if v == nil || v.Level != risk.LevelMedium {
		t.Errorf("LatestVerdict = %+v, want the stored Medium verdict", v)
	}
}
