package symptom

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matricare/matricare/internal/domain/risk"
	"github.com/matricare/matricare/internal/platform/sms"
)

// UserContext resolves the caller's pregnancy context and alert contacts.
// Implemented by an adapter over the identity service.
type UserContext interface {
	PregnancyMonth(ctx context.Context, userID uuid.UUID) (int, error)
	EmergencyContacts(ctx context.Context, userID uuid.UUID) ([]string, error)
}

// MovementContext resolves today's movement check-in for a user. found is
// false when the user has not checked in today.
type MovementContext interface {
	Today(ctx context.Context, userID uuid.UUID) (hasMovement bool, count int, found bool, err error)
}

type Service struct {
	repo       Repository
	users      UserContext
	movements  MovementContext
	classifier *risk.Classifier
	dispatcher sms.Dispatcher
	logger     zerolog.Logger
}

func NewService(repo Repository, users UserContext, movements MovementContext,
	classifier *risk.Classifier, dispatcher sms.Dispatcher, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		movements:  movements,
		classifier: classifier,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Add classifies a symptom submission against the caller's full context,
// persists the verdict verbatim, and escalates by SMS when the verdict is
// High. Escalation failure never fails the save.
func (s *Service) Add(ctx context.Context, userID uuid.UUID, symptomText string) (*Record, error) {
	text := strings.TrimSpace(symptomText)
	if text == "" {
		return nil, fmt.Errorf("symptom text required")
	}

	in := risk.NewInput(text)
	if month, err := s.users.PregnancyMonth(ctx, userID); err == nil {
		in.PregnancyMonth = month
	} else {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("pregnancy month unavailable, using default")
	}
	if hasMovement, count, found, err := s.movements.Today(ctx, userID); err == nil && found {
		in.HasMovement = hasMovement
		in.MovementCount = count
	} else if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("movement context unavailable, using defaults")
	}

	verdict := s.classifier.Assess(in)

	rec := &Record{
		UserID:  userID,
		Symptom: text,
		Risk:    verdict.Level,
		Advice:  verdict.Advice,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	if verdict.Level == risk.LevelHigh {
		s.escalate(ctx, userID, verdict.Advice)
	}
	return rec, nil
}

// escalate sends the alert to the user's configured contacts. Failures
// are logged and swallowed; the health record is already saved.
func (s *Service) escalate(ctx context.Context, userID uuid.UUID, message string) {
	contacts, err := s.users.EmergencyContacts(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("escalation contacts unavailable")
		return
	}
	if len(contacts) == 0 {
		s.logger.Warn().Str("user_id", userID.String()).Msg("high risk verdict with no emergency contacts configured")
		return
	}
	for _, res := range s.dispatcher.Send(ctx, contacts, message) {
		if !res.Delivered {
			s.logger.Error().Str("recipient", res.Recipient).Str("error", res.Error).Msg("escalation sms not delivered")
		}
	}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// LatestVerdict implements risk.SymptomSource over the repository.
func (s *Service) LatestVerdict(ctx context.Context, userID uuid.UUID) (*risk.Verdict, error) {
	rec, err := s.repo.Latest(ctx, userID)
	if err != nil || rec == nil {
		return nil, err
	}
	return &risk.Verdict{Level: rec.Risk, Advice: rec.Advice}, nil
}
