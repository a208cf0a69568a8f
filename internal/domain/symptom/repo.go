package symptom

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, rec *Record) error
	// Latest returns the user's newest record, or nil when none exists.
	Latest(ctx context.Context, userID uuid.UUID) (*Record, error)
	// ListByUser returns records newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, int, error)
}
