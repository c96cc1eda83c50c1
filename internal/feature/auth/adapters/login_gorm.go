package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// loginChallengeGorm stores pending logins.
type loginChallengeGorm struct {
	db *gorm.DB
}

var _ usecase.LoginChallengeRepository = (*loginChallengeGorm)(nil)

// NewLoginChallengeGorm creates a new instance of loginChallengeGorm.
func NewLoginChallengeGorm(db *gorm.DB) *loginChallengeGorm {
	return &loginChallengeGorm{db: db}
}

// Replace drops the user's previous challenge, if any, and inserts pl.
func (r *loginChallengeGorm) Replace(ctx context.Context, pl *entity.PendingLogin) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", pl.UserID).Delete(&entity.PendingLogin{}).Error; err != nil {
			return err
		}
		return tx.Create(pl).Error
	})
}

func (r *loginChallengeGorm) FindByID(ctx context.Context, id string) (*entity.PendingLogin, error) {
	var pl entity.PendingLogin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrLoginChallengeNotFound
		}
		return nil, err
	}
	return &pl, nil
}

func (r *loginChallengeGorm) RotateOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entity.PendingLogin{}).
		Where("id = ?", id).
		Updates(map[string]any{"otp_hash": otpHash, "otp_expires_at": expiresAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrLoginChallengeNotFound
	}
	return nil
}

// Consume deletes the challenge; only the caller that actually deleted the row succeeds.
func (r *loginChallengeGorm) Consume(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PendingLogin{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrLoginChallengeNotFound
	}
	return nil
}

func (r *loginChallengeGorm) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("otp_expires_at < ?", now).
		Delete(&entity.PendingLogin{})
	return result.RowsAffected, result.Error
}
