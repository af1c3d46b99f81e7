package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mock repositories
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil && args.Error(0) == nil {
		u.ID = 42 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// memSessionStore keeps sessions in a map so issued tokens can be
// validated back in the same test.
type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *memSessionStore) Create(_ context.Context, tokenHash string, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.sessions[tokenHash] = &cp
	return nil
}

func (s *memSessionStore) GetByHash(_ context.Context, tokenHash string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessionStore) Delete(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[tokenHash]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.sessions, tokenHash)
	return nil
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestService_Register_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	sessions := newMemSessionStore()

	mockUsers.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockUsers, sessions, "pepper", 2*time.Hour)

	user, token, err := service.Register(context.Background(), RegisterRequest{
		Name:     "New User",
		Email:    "New@Example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.RoleGuest, user.Role)
	assert.Empty(t, user.PasswordHash)

	// a fresh registration lands authenticated
	sess, err := service.ValidateSession(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, domain.RoleGuest, sess.Role)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("ExistsByEmail", mock.Anything, "dup@example.com").Return(true, nil)

	service := NewService(mockUsers, newMemSessionStore(), "pepper", 2*time.Hour)

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Dup",
		Email:    "dup@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	mockUsers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Two registrations racing past ExistsByEmail: the unique index breaks the
// tie and the loser still sees the duplicate error.
func TestService_Register_DuplicateRace(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("ExistsByEmail", mock.Anything, "race@example.com").Return(false, nil)
	mockUsers.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateKey)

	service := NewService(mockUsers, newMemSessionStore(), "pepper", 2*time.Hour)

	_, _, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Race",
		Email:    "race@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login_Success(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           7,
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         domain.RoleGuest,
	}, nil)

	sessions := newMemSessionStore()
	service := NewService(mockUsers, sessions, "pepper", 2*time.Hour)

	user, token, err := service.Login(context.Background(), LoginRequest{
		Email:    "Alice@Example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(7), user.ID)
	assert.Empty(t, user.PasswordHash)

	sess, err := service.ValidateSession(context.Background(), token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), sess.UserID)
}

func TestService_Login_WrongPassword(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           7,
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, "secret123"),
	}, nil)

	service := NewService(mockUsers, newMemSessionStore(), "pepper", 2*time.Hour)

	_, _, err := service.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// Unknown email reads identically to a wrong password.
func TestService_Login_UnknownEmail(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockUsers, newMemSessionStore(), "pepper", 2*time.Hour)

	_, _, err := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Logout_DestroysSession(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           7,
		PasswordHash: hashPassword(t, "secret123"),
	}, nil)

	sessions := newMemSessionStore()
	service := NewService(mockUsers, sessions, "pepper", 2*time.Hour)

	_, token, err := service.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(context.Background(), token))

	_, err = service.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// idempotent: a second logout of the same token is a no-op
	assert.NoError(t, service.Logout(context.Background(), token))
}

func TestService_ValidateSession_Expired(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           7,
		PasswordHash: hashPassword(t, "secret123"),
	}, nil)

	sessions := newMemSessionStore()
	// negative TTL issues an already-expired session
	service := NewService(mockUsers, sessions, "pepper", -time.Minute)

	_, token, err := service.Login(context.Background(), LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = service.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, ErrSessionExpired)

	// the expired record was removed on first sight
	assert.Empty(t, sessions.sessions)
}

func TestService_ValidateSession_EmptyToken(t *testing.T) {
	service := NewService(new(MockUserRepository), newMemSessionStore(), "pepper", 2*time.Hour)

	_, err := service.ValidateSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessionExpired)
}

// The stored key is a peppered hash, so the raw token never appears in
// the session store.
func TestService_TokenStoredAsHash(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockUsers.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{
		ID:           7,
		PasswordHash: hashPassword(t, "secret123"),
	}, nil)

	sessions := newMemSessionStore()
	service := NewService(mockUsers, sessions, "pepper", 2*time.Hour)

	_, token, err := service.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, stored := sessions.sessions[token]
	assert.False(t, stored)
	assert.Len(t, sessions.sessions, 1)
}
