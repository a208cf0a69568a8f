package movement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matricare/matricare/internal/domain/risk"
	"github.com/matricare/matricare/internal/platform/sms"
)

// UserContext resolves the caller's pregnancy context and alert contacts.
type UserContext interface {
	PregnancyMonth(ctx context.Context, userID uuid.UUID) (int, error)
	EmergencyContacts(ctx context.Context, userID uuid.UUID) ([]string, error)
}

type Service struct {
	repo       Repository
	users      UserContext
	classifier *risk.Classifier
	dispatcher sms.Dispatcher
	logger     zerolog.Logger
	now        func() time.Time
}

func NewService(repo Repository, users UserContext, classifier *risk.Classifier,
	dispatcher sms.Dispatcher, logger zerolog.Logger) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		classifier: classifier,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Record upserts today's check-in and classifies the result. A second
// consecutive no-movement day forces the critical advice regardless of
// the classifier's output. High verdicts escalate by SMS; escalation
// failure never fails the save.
func (s *Service) Record(ctx context.Context, userID uuid.UUID, hasMovement bool, count *int) (*Record, risk.Verdict, error) {
	today := DayOf(s.now())
	rec, err := s.repo.Upsert(ctx, userID, today, hasMovement, count)
	if err != nil {
		return nil, risk.Verdict{}, err
	}

	in := risk.NewInput("")
	in.HasMovement = rec.HasMovement
	in.MovementCount = rec.Count
	if month, err := s.users.PregnancyMonth(ctx, userID); err == nil {
		in.PregnancyMonth = month
	} else {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("pregnancy month unavailable, using default")
	}
	verdict := s.classifier.Assess(in)

	if !rec.HasMovement {
		prev, err := s.repo.GetByDay(ctx, userID, today.AddDate(0, 0, -1))
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("previous day lookup failed")
		} else if prev != nil && !prev.HasMovement {
			verdict = risk.Verdict{Level: risk.LevelHigh, Advice: risk.AdviceSilentDays}
		}
	}

	if verdict.Level == risk.LevelHigh {
		s.escalate(ctx, userID, verdict.Advice)
	}
	return rec, verdict, nil
}

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

// Today implements symptom.MovementContext over the repository.
func (s *Service) Today(ctx context.Context, userID uuid.UUID) (hasMovement bool, count int, found bool, err error) {
	rec, err := s.repo.GetByDay(ctx, userID, DayOf(s.now()))
	if err != nil || rec == nil {
		return false, 0, false, err
	}
	return rec.HasMovement, rec.Count, true, nil
}

// OnDay implements risk.MovementSource over the repository.
func (s *Service) OnDay(ctx context.Context, userID uuid.UUID, day time.Time) (hasMovement bool, found bool, err error) {
	rec, err := s.repo.GetByDay(ctx, userID, DayOf(day))
	if err != nil || rec == nil {
		return false, false, err
	}
	return rec.HasMovement, true, nil
}
