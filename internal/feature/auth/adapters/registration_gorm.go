package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// registrationGorm stores pending registrations.
type registrationGorm struct {
	db *gorm.DB
}

var _ usecase.RegistrationRepository = (*registrationGorm)(nil)

// NewRegistrationGorm creates a new instance of registrationGorm.
func NewRegistrationGorm(db *gorm.DB) *registrationGorm {
	return &registrationGorm{db: db}
}

// Replace purges earlier attempts for the same email or phone and inserts reg.
func (r *registrationGorm) Replace(ctx context.Context, reg *entity.PendingRegistration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ? OR phone = ?", reg.Email, reg.Phone).
			Delete(&entity.PendingRegistration{}).Error; err != nil {
			return err
		}
		return tx.Create(reg).Error
	})
}

func (r *registrationGorm) FindByID(ctx context.Context, id string) (*entity.PendingRegistration, error) {
	var reg entity.PendingRegistration
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRegistrationNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *registrationGorm) RotateOTP(ctx context.Context, id, otpHash string, expiresAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entity.PendingRegistration{}).
		Where("id = ?", id).
		Updates(map[string]any{"otp_hash": otpHash, "otp_expires_at": expiresAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrRegistrationNotFound
	}
	return nil
}

// Promote deletes the registration and creates the user in one transaction.
// The delete runs first so that two concurrent confirmations cannot both succeed.
func (r *registrationGorm) Promote(ctx context.Context, id string, user *entity.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&entity.PendingRegistration{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrRegistrationNotFound
		}
		return createUser(tx, user)
	})
}

// DeleteExpired removes registrations whose code expired before now.
func (r *registrationGorm) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("otp_expires_at < ?", now).
		Delete(&entity.PendingRegistration{})
	return result.RowsAffected, result.Error
}
