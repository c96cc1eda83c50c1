package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// mockUserRepository is a func-field UserRepository for testing the decorator.
type mockUserRepository struct {
	usecase.UserRepository
	findByIDFn func(ctx context.Context, id string) (*entity.User, error)
	approveFn  func(ctx context.Context, id, adminID string, at time.Time) error
	deleteFn   func(ctx context.Context, id string) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockUserRepository) Approve(ctx context.Context, id, adminID string, at time.Time) error {
	return m.approveFn(ctx, id, adminID, at)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	return m.deleteFn(ctx, id)
}

func TestNewCachingUserRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingUserRepository(nil, 0, &mockUserRepository{}, "")

	if repo.ttl != DefaultUserTTL {
		t.Errorf("expected default ttl %v, got %v", DefaultUserTTL, repo.ttl)
	}
	if repo.namespace != "users" {
		t.Errorf("expected namespace 'users', got %q", repo.namespace)
	}
}

func TestCachingUserRepository_FindByID_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	cached, _ := json.Marshal(entity.User{ID: "u1", Email: "a@x.com"})
	mock.ExpectGet("users:id:u1").SetVal(string(cached))

	innerCalled := false
	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			innerCalled = true
			return nil, nil
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	u, err := repo.FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if u.Email != "a@x.com" {
		t.Errorf("expected cached email, got %q", u.Email)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_FindByID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	user := &entity.User{ID: "u1", Email: "a@x.com"}
	userJSON, _ := json.Marshal(user)

	mock.ExpectGet("users:id:u1").RedisNil()
	mock.ExpectSet("users:id:u1", userJSON, time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return user, nil
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	got, err := repo.FindByID(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("expected user u1, got %q", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_FindByID_NotFoundIsNotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("users:id:ghost").RedisNil()

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	_, err := repo.FindByID(context.Background(), "ghost")

	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_FindByID_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	user := &entity.User{ID: "u1"}
	userJSON, _ := json.Marshal(user)

	mock.ExpectGet("users:id:u1").SetVal("invalid json")
	mock.ExpectDel("users:id:u1").SetVal(1)
	mock.ExpectSet("users:id:u1", userJSON, time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return user, nil
		},
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	if _, err := repo.FindByID(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_Approve_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectDel("users:id:u1").SetVal(1)

	inner := &mockUserRepository{
		approveFn: func(ctx context.Context, id, adminID string, at time.Time) error { return nil },
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	if err := repo.Approve(context.Background(), "u1", "admin", time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_Delete_InnerErrorSkipsInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	inner := &mockUserRepository{
		deleteFn: func(ctx context.Context, id string) error { return expectedErr },
	}

	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")
	err := repo.Delete(context.Background(), "u1")

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingUserRepository_NilClientBypassesCache(t *testing.T) {
	t.Parallel()

	calls := 0
	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			calls++
			return &entity.User{ID: id}, nil
		},
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}

	repo := NewCachingUserRepository(nil, time.Minute, inner, "users")
	for range 2 {
		if _, err := repo.FindByID(context.Background(), "u1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := repo.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 inner calls, got %d", calls)
	}
}

func TestSafe(t *testing.T) {
	t.Parallel()

	if got := safe("a b:c"); got != "a_b_c" {
		t.Errorf("expected a_b_c, got %q", got)
	}
}
