package movement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Upsert creates or updates the user's record for the given day in a
	// single atomic statement. When count is nil, a new record defaults
	// to 1 (movement felt) or 0, and an existing record increments by 1
	// only when movement was felt.
	Upsert(ctx context.Context, userID uuid.UUID, day time.Time, hasMovement bool, count *int) (*Record, error)
	// GetByDay returns the record for the given calendar day, or nil
	// when the user did not check in.
	GetByDay(ctx context.Context, userID uuid.UUID, day time.Time) (*Record, error)
	// ListByUser returns records newest day first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, int, error)
}
