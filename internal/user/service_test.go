package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/raihansarker4343/exchange/internal/auth"
)

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, name, email, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) ListAll(ctx context.Context) ([]User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]User), args.Error(1)
}

func (m *MockUserRepo) SetActive(ctx context.Context, id int, isActive bool) (*User, error) {
	args := m.Called(ctx, id, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

const testSecret = "test-secret"

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Duplicate email rejected", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", ctx, "a@example.com").Return(true, nil)

		svc := NewService(repo, testSecret)
		u, token, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "a@example.com", Password: "secret1"})

		assert.Nil(t, u)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrEmailExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("New user gets USER role and a token", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("EmailExists", ctx, "a@example.com").Return(false, nil)
		repo.On("Create", ctx, "Alice", "a@example.com", mock.AnythingOfType("string"), auth.RoleUser).
			Return(&User{ID: 1, Name: "Alice", Email: "a@example.com", Role: auth.RoleUser, IsActive: true}, nil)

		svc := NewService(repo, testSecret)
		u, token, err := svc.Register(ctx, RegisterRequest{Name: "Alice", Email: "a@example.com", Password: "secret1"})

		require.NoError(t, err)
		assert.Equal(t, auth.RoleUser, u.Role)
		assert.NotEmpty(t, token)

		claims, err := auth.ValidateToken(token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.UserID)
		assert.Equal(t, auth.RoleUser, claims.Role)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("correct-password")
	require.NoError(t, err)

	active := &User{ID: 1, Name: "Alice", Email: "a@example.com", PasswordHash: hash, Role: auth.RoleUser, IsActive: true}
	deactivated := &User{ID: 2, Name: "Bob", Email: "b@example.com", PasswordHash: hash, Role: auth.RoleUser, IsActive: false}

	t.Run("Valid credentials", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", ctx, "a@example.com").Return(active, nil)

		svc := NewService(repo, testSecret)
		u, token, err := svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "correct-password"})

		require.NoError(t, err)
		assert.Equal(t, 1, u.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("Unknown email maps to invalid credentials", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, ErrUserNotFound)

		svc := NewService(repo, testSecret)
		_, _, err := svc.Login(ctx, LoginRequest{Email: "ghost@example.com", Password: "whatever"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", ctx, "a@example.com").Return(active, nil)

		svc := NewService(repo, testSecret)
		_, _, err := svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Deactivated account with correct password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", ctx, "b@example.com").Return(deactivated, nil)

		svc := NewService(repo, testSecret)
		_, _, err := svc.Login(ctx, LoginRequest{Email: "b@example.com", Password: "correct-password"})

		assert.ErrorIs(t, err, ErrAccountDeactivated)
	})

	t.Run("Deactivated account with wrong password stays invalid credentials", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FindByEmail", ctx, "b@example.com").Return(deactivated, nil)

		svc := NewService(repo, testSecret)
		_, _, err := svc.Login(ctx, LoginRequest{Email: "b@example.com", Password: "wrong"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSetActive_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepo)
	deactivated := &User{ID: 2, Name: "Bob", IsActive: false}
	repo.On("SetActive", ctx, 2, false).Return(deactivated, nil).Twice()

	svc := NewService(repo, testSecret)

	u1, err := svc.SetActive(ctx, 2, false)
	require.NoError(t, err)
	u2, err := svc.SetActive(ctx, 2, false)
	require.NoError(t, err)

	assert.Equal(t, u1.IsActive, u2.IsActive)
	repo.AssertExpectations(t)
}
