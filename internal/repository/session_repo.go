package repository

import (
	"context"
	"time"

	"roomreserve/internal/domain"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Sessions are keyed by the sha256 hash of the opaque token; the raw value
// never reaches the store.
type sessionModel struct {
	TokenHash string    `gorm:"column:token_hash;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	Role      string    `gorm:"column:role"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (sessionModel) TableName() string { return "sessions" }

func (r *SessionRepository) Create(ctx context.Context, tokenHash string, s *domain.Session) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	m := sessionModel{
		TokenHash: tokenHash,
		UserID:    s.UserID,
		Role:      string(s.Role),
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
	return translate(r.db.WithContext(ctx).Create(&m).Error)
}

func (r *SessionRepository) GetByHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var m sessionModel
	tx := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&m)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	return &domain.Session{
		UserID:    m.UserID,
		Role:      domain.UserRole(m.Role),
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return translate(r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&sessionModel{}).Error)
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return translate(r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&sessionModel{}).Error)
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&sessionModel{})
	if tx.Error != nil {
		return 0, translate(tx.Error)
	}
	return tx.RowsAffected, nil
}
