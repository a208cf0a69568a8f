package risk

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SymptomSource supplies the most recent stored symptom verdict for a
// user. Implemented by an adapter over the symptom repository so this
// package never touches persistence directly.
type SymptomSource interface {
	// LatestVerdict returns the verdict stored with the user's newest
	// symptom record, or nil when the user has no symptom history.
	LatestVerdict(ctx context.Context, userID uuid.UUID) (*Verdict, error)
}

// MovementSource supplies per-day movement check-ins.
type MovementSource interface {
	// OnDay returns the movement flag for the record on the given
	// calendar day. found is false when no check-in exists for that day.
	OnDay(ctx context.Context, userID uuid.UUID, day time.Time) (hasMovement bool, found bool, err error)
}
