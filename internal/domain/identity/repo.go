package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	IncrementFailedLogins(ctx context.Context, id uuid.UUID) error
}
