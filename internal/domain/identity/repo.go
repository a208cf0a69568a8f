package identity

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByMobile(ctx context.Context, mobile string) (*User, error)
	Update(ctx context.Context, u *User) error
}
