package auth

import (
	"context"

	"roomreserve/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// SessionRepositoryInterface — storage for opaque session records,
// keyed by token hash
type SessionRepositoryInterface interface {
	Create(ctx context.Context, tokenHash string, s *domain.Session) error
	GetByHash(ctx context.Context, tokenHash string) (*domain.Session, error)
	Delete(ctx context.Context, tokenHash string) error
}
