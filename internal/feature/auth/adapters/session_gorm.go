package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// sessionGorm is a GORM implementation of the SessionRepository interface.
// It is used when no Redis server is configured.
type sessionGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure sessionGorm implements SessionRepository.
var _ usecase.SessionRepository = (*sessionGorm)(nil)

// NewSessionGorm creates a new instance of sessionGorm.
func NewSessionGorm(db *gorm.DB) *sessionGorm {
	return &sessionGorm{db: db}
}

// Replace deletes every session of the user and stores s in one transaction.
func (r *sessionGorm) Replace(ctx context.Context, s *entity.Session) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", s.UserID).Delete(&SessionModel{}).Error; err != nil {
			return err
		}
		return tx.Create(SessionModelFromEntity(s)).Error
	})
}

// FindByToken retrieves a session by the token held in the session cookie.
func (r *sessionGorm) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	var model SessionModel
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// DeleteByToken removes the session if it exists.
func (r *sessionGorm) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&SessionModel{}).Error
}

// DeleteByUserID removes all sessions of the user.
func (r *sessionGorm) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&SessionModel{}).Error
}

// DeleteExpired removes all sessions that expired before now.
func (r *sessionGorm) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&SessionModel{})
	return result.RowsAffected, result.Error
}
