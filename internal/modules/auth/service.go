package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"roomreserve/internal/domain"
	"roomreserve/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// dummyPasswordHash is compared against when the email is unknown, so the
// unknown-email and wrong-password paths cost the same.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Service contains all business logic for registration, login and sessions.
type Service struct {
	users    UserRepositoryInterface
	sessions SessionRepositoryInterface
	pepper   string
	ttl      time.Duration
}

func NewService(users UserRepositoryInterface, sessions SessionRepositoryInterface, pepper string, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		pepper:   pepper,
		ttl:      ttl,
	}
}

// Register creates the user and immediately issues a session, so a fresh
// registration lands authenticated.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleGuest,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", ErrEmailAlreadyExists
		}
		return nil, "", err
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// burn the same bcrypt work as the mismatch path
			_ = bcrypt.CompareHashAndPassword([]byte(dummyPasswordHash), []byte(req.Password))
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

// Logout destroys the session record server-side. An unknown or already
// expired token is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.sessions.Delete(ctx, hashTokenWithPepper(token, s.pepper))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// ValidateSession resolves an opaque token to its session record. Expired
// records are treated as absent and removed opportunistically.
func (s *Service) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}

	hash := hashTokenWithPepper(token, s.pepper)
	sess, err := s.sessions.GetByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}

	if sess.IsExpired(time.Now()) {
		_ = s.sessions.Delete(ctx, hash)
		return nil, ErrSessionExpired
	}

	return sess, nil
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// issueSession mints an opaque token with a fixed TTL from issuance.
func (s *Service) issueSession(ctx context.Context, user *domain.User) (string, error) {
	raw, hash, err := generateOpaqueToken(s.pepper)
	if err != nil {
		return "", err
	}

	now := time.Now()
	sess := &domain.Session{
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, hash, sess); err != nil {
		return "", err
	}
	return raw, nil
}

func generateOpaqueToken(pepper string) (raw string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(buf)
	hash = hashTokenWithPepper(raw, pepper)
	return raw, hash, nil
}

func hashTokenWithPepper(raw, pepper string) string {
	sum := sha256.Sum256([]byte(raw + pepper))
	return hex.EncodeToString(sum[:])
}
