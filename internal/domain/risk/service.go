package risk

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Advice for the movement-history overrides, shared with the movement
// write path.
const (
	AdviceNoMovementToday = "No baby movement recorded today. Please consult your doctor."
	AdviceSilentDays      = "CRITICAL: No baby movement for 2 consecutive days. Please visit the hospital immediately."
)

// Service answers "what is the user's current risk status" by combining
// the latest stored symptom verdict with today's movement check-in. This
// is a read-time aggregation over persisted history, distinct from the
// write-time Classifier.
type Service struct {
	symptoms  SymptomSource
	movements MovementSource
	cfg       Config
	now       func() time.Time
}

func NewService(symptoms SymptomSource, movements MovementSource, cfg Config) *Service {
	return &Service{symptoms: symptoms, movements: movements, cfg: cfg, now: time.Now}
}

// CurrentLevel computes the user's present risk status.
//
// The latest symptom's stored verdict is the starting point (Safe with a
// generic reassurance when there is none). An explicit no-movement entry
// for today forces High; two consecutive no-movement days force the
// critical advice. Absence of a check-in is not itself a risk signal.
func (s *Service) CurrentLevel(ctx context.Context, userID uuid.UUID) (Verdict, error) {
	verdict := Verdict{Level: LevelSafe, Advice: adviceSafeText}

	latest, err := s.symptoms.LatestVerdict(ctx, userID)
	if err != nil {
		return Verdict{}, err
	}
	if latest != nil && latest.Level != LevelSafe {
		verdict = *latest
		if verdict.Advice == "" {
			if verdict.Level == LevelHigh {
				verdict.Advice = adviceHighText
			} else {
				verdict.Advice = adviceMediumText
			}
		}
	}

	today := s.now()
	hasMovement, found, err := s.movements.OnDay(ctx, userID, today)
	if err != nil {
		return Verdict{}, err
	}
	if !found || hasMovement {
		return verdict, nil
	}

	verdict.Level = LevelHigh
	verdict.Advice = AdviceNoMovementToday

	// A second consecutive silent day escalates the advice further.
	yesterday := today.AddDate(0, 0, -1)
	prevMovement, prevFound, err := s.movements.OnDay(ctx, userID, yesterday)
	if err != nil {
		return Verdict{}, err
	}
	if prevFound && !prevMovement {
		verdict.Advice = AdviceSilentDays
	}

	return verdict, nil
}
