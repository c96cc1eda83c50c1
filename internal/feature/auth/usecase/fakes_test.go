package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/shared/notification"
)

// memUsers is an in-memory UserRepository.
type memUsers struct {
	mu    sync.Mutex
	users map[string]entity.User
	// err, when set, is returned by every lookup.
	err error
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]entity.User{}}
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.Phone == u.Phone {
			return domain.ErrEmailOrPhoneTaken
		}
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memUsers) find(match func(entity.User) bool) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*entity.User, error) {
	return m.find(func(u entity.User) bool { return u.ID == id })
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return m.find(func(u entity.User) bool { return u.Email == email })
}

func (m *memUsers) FindByPhone(_ context.Context, phone string) (*entity.User, error) {
	return m.find(func(u entity.User) bool { return u.Phone == phone })
}

func (m *memUsers) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, error) {
	_, err := m.find(func(u entity.User) bool { return u.Email == email || u.Phone == phone })
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m *memUsers) list(filter func(entity.User) bool) []entity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []entity.User{}
	for _, u := range m.users {
		if filter(u) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memUsers) ListPending(context.Context) ([]entity.User, error) {
	return m.list(func(u entity.User) bool { return !u.IsApproved }), nil
}

func (m *memUsers) ListAll(context.Context) ([]entity.User, error) {
	return m.list(func(entity.User) bool { return true }), nil
}

func (m *memUsers) Approve(_ context.Context, id, adminID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsApproved = true
	u.ApprovedAt = &at
	u.ApprovedBy = &adminID
	m.users[id] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUsers) put(u entity.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *memUsers) get(id string) (entity.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return u, ok
}

// memRegistrations is an in-memory RegistrationRepository.
type memRegistrations struct {
	mu    sync.Mutex
	regs  map[string]entity.PendingRegistration
	users *memUsers
}

func (m *memRegistrations) Replace(_ context.Context, reg *entity.PendingRegistration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, r := range m.regs {
		if r.Email == reg.Email || r.Phone == reg.Phone {
			delete(m.regs, id)
		}
	}
	m.regs[reg.ID] = *reg
	return nil
}

func (m *memRegistrations) FindByID(_ context.Context, id string) (*entity.PendingRegistration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.regs[id]
	if !ok {
		return nil, ErrRegistrationNotFound
	}
	return &r, nil
}

func (m *memRegistrations) RotateOTP(_ context.Context, id, otpHash string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.regs[id]
	if !ok {
		return ErrRegistrationNotFound
	}
	r.OTPHash = otpHash
	r.OTPExpiresAt = expiresAt
	m.regs[id] = r
	return nil
}

func (m *memRegistrations) Promote(ctx context.Context, id string, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.regs[id]; !ok {
		return ErrRegistrationNotFound
	}
	if err := m.users.Create(ctx, user); err != nil {
		return err
	}
	delete(m.regs, id)
	return nil
}

func (m *memRegistrations) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.regs {
		if r.OTPExpiresAt.Before(now) {
			delete(m.regs, id)
			n++
		}
	}
	return n, nil
}

func (m *memRegistrations) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regs)
}

// memLogins is an in-memory LoginChallengeRepository.
type memLogins struct {
	mu     sync.Mutex
	logins map[string]entity.PendingLogin
}

func (m *memLogins) Replace(_ context.Context, pl *entity.PendingLogin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, l := range m.logins {
		if l.UserID == pl.UserID {
			delete(m.logins, id)
		}
	}
	m.logins[pl.ID] = *pl
	return nil
}

func (m *memLogins) FindByID(_ context.Context, id string) (*entity.PendingLogin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logins[id]
	if !ok {
		return nil, ErrLoginChallengeNotFound
	}
	return &l, nil
}

func (m *memLogins) RotateOTP(_ context.Context, id, otpHash string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logins[id]
	if !ok {
		return ErrLoginChallengeNotFound
	}
	l.OTPHash = otpHash
	l.OTPExpiresAt = expiresAt
	m.logins[id] = l
	return nil
}

func (m *memLogins) Consume(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.logins[id]; !ok {
		return ErrLoginChallengeNotFound
	}
	delete(m.logins, id)
	return nil
}

func (m *memLogins) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *memLogins) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.logins)
}

// memSessions is an in-memory SessionRepository.
type memSessions struct {
	mu       sync.Mutex
	sessions map[string]entity.Session // keyed by token
}

func (m *memSessions) Replace(_ context.Context, s *entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, existing := range m.sessions {
		if existing.UserID == s.UserID {
			delete(m.sessions, token)
		}
	}
	m.sessions[s.Token] = *s
	return nil
}

func (m *memSessions) FindByToken(_ context.Context, token string) (*entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *memSessions) DeleteByToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *memSessions) DeleteByUserID(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, token)
		}
	}
	return nil
}

func (m *memSessions) DeleteExpired(context.Context, time.Time) (int64, error) { return 0, nil }

func (m *memSessions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// plainHasher "hashes" by prefixing, which keeps tests fast and readable.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// sentOTP is one call recorded by recordingSender.
type sentOTP struct {
	Channel     string
	Destination string
	Code        string
	Purpose     notification.Purpose
}

// recordingSender records every code it is asked to send.
type recordingSender struct {
	mu   sync.Mutex
	sent []sentOTP
	err  error
}

func (s *recordingSender) SendOTP(_ context.Context, channel, destination, code string, purpose notification.Purpose) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentOTP{channel, destination, code, purpose})
	return nil
}

func (s *recordingSender) last() sentOTP {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return sentOTP{}
	}
	return s.sent[len(s.sent)-1]
}

// recordingDispatcher records dispatched events and optionally fails.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []notification.Event
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, ev notification.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
	return d.err
}

// fakeClock is a settable clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequenceIDs returns "id-1", "id-2", ...
func sequenceIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
