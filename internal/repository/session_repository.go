package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/agrostack/farmkeep/internal/model"
)

type SessionRepo struct{ db *gorm.DB }

func NewSessionRepo(db *gorm.DB) *SessionRepo { return &SessionRepo{db: db} }

// Store persists the hash of a freshly issued refresh token.
func (r *SessionRepo) Store(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).Create(&model.Session{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}).Error
}

// GetActive returns the session for tokenHash if it is neither revoked
// nor expired.
func (r *SessionRepo) GetActive(ctx context.Context, tokenHash string) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", tokenHash, time.Now().UTC()).
		First(&s).Error
	if err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

// Revoke marks the session for tokenHash as revoked. Revoking an unknown
// or already-revoked token returns ErrNotFound.
func (r *SessionRepo) Revoke(ctx context.Context, tokenHash string) error {
	res := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("token_hash = ? AND revoked_at IS NULL", tokenHash).
		Update("revoked_at", time.Now().UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
