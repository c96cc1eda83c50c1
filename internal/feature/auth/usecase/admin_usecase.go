package usecase

import (
	"context"
	"fmt"
	"time"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/shared/notification"
)

// AdminUsecase implements the approval gate and user administration.
// Callers are expected to have verified the admin role already.
type AdminUsecase struct {
	users    UserRepository
	sessions SessionRepository
	events   EventDispatcher
	now      func() time.Time
}

// NewAdminUsecase creates a new AdminUsecase. events may be nil.
func NewAdminUsecase(users UserRepository, sessions SessionRepository, events EventDispatcher, now func() time.Time) *AdminUsecase {
	if now == nil {
		now = time.Now
	}
	return &AdminUsecase{users: users, sessions: sessions, events: events, now: now}
}

// ListPending returns the users waiting for approval, newest first.
func (u *AdminUsecase) ListPending(ctx context.Context) ([]entity.User, error) {
	return u.users.ListPending(ctx)
}

// ListAll returns every user, newest first.
func (u *AdminUsecase) ListAll(ctx context.Context) ([]entity.User, error) {
	return u.users.ListAll(ctx)
}

// Approve lets the user log in. The approval notification is best effort and
// its failure does not revert the approval.
func (u *AdminUsecase) Approve(ctx context.Context, adminID, userID string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsApproved {
		return nil, domain.ErrAlreadyApproved
	}

	now := u.now()
	if err := u.users.Approve(ctx, user.ID, adminID, now); err != nil {
		return nil, fmt.Errorf("failed to approve user: %w", err)
	}
	user.IsApproved = true
	user.ApprovedAt = &now
	user.ApprovedBy = &adminID

	dispatchBestEffort(ctx, u.events, notification.Event{
		Type:       notification.EventUserApproved,
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		OccurredAt: now,
	})
	return user, nil
}

// DeleteUser removes the user and everything that depends on it, and returns the removed user.
func (u *AdminUsecase) DeleteUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := u.users.Delete(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	// The session store may live outside the user database (Redis).
	if err := u.sessions.DeleteByUserID(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke sessions of deleted user: %w", err)
	}
	return user, nil
}
