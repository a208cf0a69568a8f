package emergency

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matricare/matricare/internal/platform/sms"
)

type mockContacts struct {
	contacts []string
	err      error
}

func (m *mockContacts) EmergencyContacts(_ context.Context, _ uuid.UUID) ([]string, error) {
	return m.contacts, m.err
}

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

func TestTrigger_SendsToContacts(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := NewService(&mockContacts{contacts: []string{"9333333333", "9222222222"}},
		dispatcher, nil, zerolog.Nop())

	results, err := svc.Trigger(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if dispatcher.messages[0] != DefaultMessage {
		t.Errorf("message = %q, want the default emergency text", dispatcher.messages[0])
	}
}

func TestTrigger_FallbackNumbers(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := NewService(&mockContacts{}, dispatcher, []string{"9000000000"}, zerolog.Nop())

	results, err := svc.Trigger(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	if len(results) != 1 || results[0].Recipient != "9000000000" {
		t.Errorf("results = %+v, want fallback recipient", results)
	}
}

func TestTrigger_NoContactsNoFallback(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	svc := NewService(&mockContacts{}, dispatcher, nil, zerolog.Nop())

	results, err := svc.Trigger(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Trigger returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %+v, want none", results)
	}
	if len(dispatcher.numbers) != 0 {
		t.Error("dispatcher must not be called without recipients")
	}
}

func TestTrigger_DeliveryFailureReportedNotRaised(t *testing.T) {
	dispatcher := &recordingDispatcher{fail: true}
	svc := NewService(&mockContacts{contacts: []string{"9333333333"}}, dispatcher, nil, zerolog.Nop())

	results, err := svc.Trigger(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("delivery failure must not raise an error: %v", err)
	}
	if len(results) != 1 || results[0].Delivered {
		t.Errorf("results = %+v, want one undelivered result", results)
	}
}

func TestTrigger_ContactLookupErrorPropagates(t *testing.T) {
	svc := NewService(&mockContacts{err: errors.New("db down")}, &recordingDispatcher{}, nil, zerolog.Nop())

	if _, err := svc.Trigger(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected contact lookup error to propagate")
	}
}
