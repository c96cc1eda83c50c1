package di

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth_backend/internal/feature/auth/domain/entity"
)

func TestReap(t *testing.T) {
	db := setupTestDB(t)
	repos := NewRepositories(nil, db, 0)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	user := &entity.User{ID: "u1", Name: "A", Email: "a@x.com", Phone: "0123456789", PasswordHash: "h", Role: entity.RoleUser, IsActive: true, IsApproved: true}
	require.NoError(t, repos.Users.Create(ctx, user))

	require.NoError(t, repos.Registrations.Replace(ctx, &entity.PendingRegistration{
		ID: "r-old", Name: "B", Email: "b@x.com", Phone: "0222222222", PasswordHash: "h",
		OTPHash: "x", OTPExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-6 * time.Minute),
	}))
	require.NoError(t, repos.Registrations.Replace(ctx, &entity.PendingRegistration{
		ID: "r-live", Name: "C", Email: "c@x.com", Phone: "0333333333", PasswordHash: "h",
		OTPHash: "x", OTPExpiresAt: now.Add(time.Minute), CreatedAt: now,
	}))
	require.NoError(t, repos.Logins.Replace(ctx, &entity.PendingLogin{
		ID: "l-old", UserID: "u1", Channel: entity.ChannelEmail, Destination: "a@x.com",
		OTPHash: "x", OTPExpiresAt: now.Add(-time.Second), CreatedAt: now.Add(-5 * time.Minute),
	}))
	require.NoError(t, repos.Sessions.Replace(ctx, &entity.Session{
		ID: "s-old", UserID: "u1", Token: "tok-old", CreatedAt: now.Add(-25 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}))

	report, err := Reap(ctx, repos, now)
	require.NoError(t, err)
	assert.Equal(t, ReapReport{Registrations: 1, Logins: 1, Sessions: 1}, report)

	_, err = repos.Registrations.FindByID(ctx, "r-live")
	assert.NoError(t, err)
	_, err = repos.Registrations.FindByID(ctx, "r-old")
	assert.Error(t, err)
}
