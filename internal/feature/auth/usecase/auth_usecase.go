package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/otp"
	"auth_backend/internal/shared/notification"
)

const (
	// DefaultSessionTTL is the lifetime of an authenticated session.
	DefaultSessionTTL = 24 * time.Hour

	sessionTokenBytes = 32

	// dummyPasswordHash is compared against when no user matches the identifier,
	// so a login for an unknown account costs the same bcrypt work as a real one.
	dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// RegisterInput is the data submitted on /auth/register.
type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// ClientMeta describes the client that completes a login.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}

// AuthDeps groups the collaborators of AuthUsecase.
type AuthDeps struct {
	Users         UserRepository
	Registrations RegistrationRepository
	Logins        LoginChallengeRepository
	Sessions      SessionRepository
	OTP           OTPEngine
	Hasher        PasswordHasher
	Sender        OTPSender
	// Events may be nil, in which case best-effort notifications are skipped.
	Events EventDispatcher
}

// Options tunes AuthUsecase. Zero values fall back to defaults.
type Options struct {
	SessionTTL time.Duration
	Now        func() time.Time
	NewID      func() string
	NewToken   func() (string, error)
}

// AuthUsecase drives the registration and login state machine:
// PendingRegistration -> User (unapproved) and PendingLogin -> Session.
// Every transition looks up the ephemeral record named by the client's opaque
// reference and checks that it exists and has not expired before advancing.
type AuthUsecase struct {
	users         UserRepository
	registrations RegistrationRepository
	logins        LoginChallengeRepository
	sessions      SessionRepository
	otp           OTPEngine
	hasher        PasswordHasher
	sender        OTPSender
	events        EventDispatcher

	sessionTTL time.Duration
	now        func() time.Time
	newID      func() string
	newToken   func() (string, error)
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(deps AuthDeps, opts Options) *AuthUsecase {
	u := &AuthUsecase{
		users:         deps.Users,
		registrations: deps.Registrations,
		logins:        deps.Logins,
		sessions:      deps.Sessions,
		otp:           deps.OTP,
		hasher:        deps.Hasher,
		sender:        deps.Sender,
		events:        deps.Events,
		sessionTTL:    opts.SessionTTL,
		now:           opts.Now,
		newID:         opts.NewID,
		newToken:      opts.NewToken,
	}
	if u.sessionTTL <= 0 {
		u.sessionTTL = DefaultSessionTTL
	}
	if u.now == nil {
		u.now = time.Now
	}
	if u.newID == nil {
		u.newID = uuid.NewString
	}
	if u.newToken == nil {
		u.newToken = newSessionToken
	}
	return u
}

// Register stores a pending registration and emails its OTP.
// It returns the opaque reference of the pending registration.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (string, error) {
	// Checked before anything is read or written.
	if in.Password != in.ConfirmPassword {
		return "", domain.ErrPasswordMismatch
	}

	taken, err := u.users.ExistsByEmailOrPhone(ctx, in.Email, in.Phone)
	if err != nil {
		return "", fmt.Errorf("failed to check existing users: %w", err)
	}
	if taken {
		return "", domain.ErrEmailOrPhoneTaken
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	code, err := u.otp.Generate()
	if err != nil {
		return "", err
	}

	now := u.now()
	reg := &entity.PendingRegistration{
		ID:           u.newID(),
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		OTPHash:      otp.Hash(code),
		OTPExpiresAt: u.otp.Expiry(now),
		CreatedAt:    now,
	}
	if err := u.registrations.Replace(ctx, reg); err != nil {
		return "", fmt.Errorf("failed to store registration: %w", err)
	}

	if err := u.sender.SendOTP(ctx, entity.ChannelEmail, reg.Email, code, notification.PurposeRegistration); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrOTPDelivery, err)
	}
	return reg.ID, nil
}

// VerifyRegistration confirms the OTP of the registration named by ref and
// creates the corresponding unapproved user.
// A wrong or expired code leaves the registration in place for a resend.
func (u *AuthUsecase) VerifyRegistration(ctx context.Context, ref, code string) (*entity.User, error) {
	if ref == "" {
		return nil, ErrRegistrationNotFound
	}
	reg, err := u.registrations.FindByID(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load registration: %w", err)
	}

	now := u.now()
	if res := otp.Verify(reg.OTPHash, reg.OTPExpiresAt, code, now); res != otp.Valid {
		slog.Info("registration otp rejected", "registration_id", reg.ID, "result", res.String())
		return nil, domain.ErrOTPInvalid
	}

	user := reg.NewUser(u.newID())
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := u.registrations.Promote(ctx, reg.ID, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	dispatchBestEffort(ctx, u.events, notification.Event{
		Type:       notification.EventUserRegistered,
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		OccurredAt: now,
	})
	return user, nil
}

// ResendRegistrationOTP rotates the code of the registration named by ref and emails it again.
func (u *AuthUsecase) ResendRegistrationOTP(ctx context.Context, ref string) error {
	if ref == "" {
		return ErrRegistrationNotFound
	}
	reg, err := u.registrations.FindByID(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to load registration: %w", err)
	}

	code, err := u.otp.Generate()
	if err != nil {
		return err
	}
	if err := u.registrations.RotateOTP(ctx, reg.ID, otp.Hash(code), u.otp.Expiry(u.now())); err != nil {
		return fmt.Errorf("failed to rotate registration otp: %w", err)
	}

	if err := u.sender.SendOTP(ctx, entity.ChannelEmail, reg.Email, code, notification.PurposeRegistration); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOTPDelivery, err)
	}
	return nil
}

// Login checks the password of the account named by identifier (email or phone)
// and starts an OTP challenge on the same channel.
// It returns the opaque reference of the pending login.
func (u *AuthUsecase) Login(ctx context.Context, identifier, password string) (string, error) {
	channel, err := ClassifyIdentifier(identifier)
	if err != nil {
		return "", err
	}

	var user *entity.User
	if channel == entity.ChannelEmail {
		user, err = u.users.FindByEmail(ctx, identifier)
	} else {
		user, err = u.users.FindByPhone(ctx, identifier)
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	// Always run the comparison so unknown accounts cost the same as wrong passwords.
	passwordHash := dummyPasswordHash
	if user != nil {
		passwordHash = user.PasswordHash
	}
	compareErr := u.hasher.Compare(passwordHash, password)
	if user == nil || compareErr != nil {
		return "", domain.ErrInvalidCredentials
	}

	if !user.IsApproved {
		return "", domain.ErrNotApproved
	}
	if !user.IsActive {
		return "", domain.ErrAccountDisabled
	}

	code, err := u.otp.Generate()
	if err != nil {
		return "", err
	}

	destination := user.Email
	if channel == entity.ChannelSMS {
		destination = user.Phone
	}

	now := u.now()
	pl := &entity.PendingLogin{
		ID:           u.newID(),
		UserID:       user.ID,
		Channel:      channel,
		Destination:  destination,
		OTPHash:      otp.Hash(code),
		OTPExpiresAt: u.otp.Expiry(now),
		CreatedAt:    now,
	}
	if err := u.logins.Replace(ctx, pl); err != nil {
		return "", fmt.Errorf("failed to store login challenge: %w", err)
	}

	if err := u.sender.SendOTP(ctx, pl.Channel, pl.Destination, code, notification.PurposeLogin); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrOTPDelivery, err)
	}
	return pl.ID, nil
}

// VerifyOTP confirms the OTP of the pending login named by ref and issues a new
// session, replacing any session the user already had.
// A wrong or expired code leaves the pending login in place for a resend.
func (u *AuthUsecase) VerifyOTP(ctx context.Context, ref, code string, meta ClientMeta) (*entity.Session, *entity.User, error) {
	if ref == "" {
		return nil, nil, ErrLoginChallengeNotFound
	}
	pl, err := u.logins.FindByID(ctx, ref)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load login challenge: %w", err)
	}

	now := u.now()
	if res := otp.Verify(pl.OTPHash, pl.OTPExpiresAt, code, now); res != otp.Valid {
		slog.Info("login otp rejected", "login_id", pl.ID, "user_id", pl.UserID, "result", res.String())
		return nil, nil, domain.ErrOTPInvalid
	}

	user, err := u.users.FindByID(ctx, pl.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	// Consuming first makes the reference single use even under concurrent submissions.
	if err := u.logins.Consume(ctx, pl.ID); err != nil {
		return nil, nil, fmt.Errorf("failed to consume login challenge: %w", err)
	}

	token, err := u.newToken()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate session token: %w", err)
	}
	session := &entity.Session{
		ID:        u.newID(),
		UserID:    user.ID,
		Token:     token,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.sessionTTL),
	}
	if err := u.sessions.Replace(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to store session: %w", err)
	}
	return session, user, nil
}

// ResendOTP rotates the code of the pending login named by ref and sends it
// again on the channel used for the original code.
func (u *AuthUsecase) ResendOTP(ctx context.Context, ref string) error {
	if ref == "" {
		return ErrLoginChallengeNotFound
	}
	pl, err := u.logins.FindByID(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to load login challenge: %w", err)
	}
	if _, err := u.users.FindByID(ctx, pl.UserID); err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	code, err := u.otp.Generate()
	if err != nil {
		return err
	}
	if err := u.logins.RotateOTP(ctx, pl.ID, otp.Hash(code), u.otp.Expiry(u.now())); err != nil {
		return fmt.Errorf("failed to rotate login otp: %w", err)
	}

	if err := u.sender.SendOTP(ctx, pl.Channel, pl.Destination, code, notification.PurposeLogin); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrOTPDelivery, err)
	}
	return nil
}

// Logout deletes the session identified by token. An empty or unknown token is not an error.
func (u *AuthUsecase) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := u.sessions.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CurrentUser resolves a session token to its user.
func (u *AuthUsecase) CurrentUser(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := u.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.IsExpiredAt(u.now()) {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: session user no longer exists", domain.ErrUnauthenticated)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// newSessionToken returns 32 random bytes, hex encoded.
func newSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// dispatchBestEffort hands ev to d and only logs a failure.
func dispatchBestEffort(ctx context.Context, d EventDispatcher, ev notification.Event) {
	if d == nil {
		return
	}
	if err := d.Dispatch(ctx, ev); err != nil {
		slog.Warn("notification dispatch failed", "type", ev.Type, "user_id", ev.UserID, "error", err)
	}
}
