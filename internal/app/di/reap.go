package di

import (
	"context"
	"fmt"
	"time"
)

// ReapReport counts the rows removed by Reap.
type ReapReport struct {
	Registrations int64
	Logins        int64
	Sessions      int64
}

// Reap deletes every ephemeral record that expired before now.
// Expired records are already unusable, so this only reclaims space.
func Reap(ctx context.Context, repos Repositories, now time.Time) (ReapReport, error) {
	var report ReapReport
	var err error

	if report.Registrations, err = repos.Registrations.DeleteExpired(ctx, now); err != nil {
		return report, fmt.Errorf("failed to reap registrations: %w", err)
	}
	if report.Logins, err = repos.Logins.DeleteExpired(ctx, now); err != nil {
		return report, fmt.Errorf("failed to reap login challenges: %w", err)
	}
	if report.Sessions, err = repos.Sessions.DeleteExpired(ctx, now); err != nil {
		return report, fmt.Errorf("failed to reap sessions: %w", err)
	}
	return report, nil
}
