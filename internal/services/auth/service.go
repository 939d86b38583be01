package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"invoice-dashboard-backend/internal/clock"
	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/models"
	"invoice-dashboard-backend/internal/repository"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

var validate = validator.New()

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*models.Session, error)
	Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time) error
}

// LoginRequest is the sign-in form plus the client details kept on the session.
type LoginRequest struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	RawToken  string
	SessionID uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
}

type Service struct {
	users    UserStore
	sessions SessionStore
	clock    clock.Clock
	ttl      time.Duration
	log      *zap.Logger
}

func NewService(users UserStore, sessions SessionStore, clk clock.Clock, ttl time.Duration, log *zap.Logger) *Service {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Service{
		users:    users,
		sessions: sessions,
		clock:    clk,
		ttl:      ttl,
		log:      log.Named("auth.service"),
	}
}

// CreateUser stores a user with a hashed password.
func (s *Service) CreateUser(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and opens a session. A malformed form, an
// unknown email and a wrong password all fail as CredentialsSignin.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, newAuthError(KindCredentialsSignin, err)
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, newAuthError(KindCredentialsSignin, err)
		}
		return nil, err
	}
	if !VerifyPassword(req.Password, user.PasswordHash) {
		return nil, newAuthError(KindCredentialsSignin, nil)
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, errors.Wrap(err, "generate session token")
	}

	now := s.clock.Now()
	session := &models.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		Metadata: datatypes.JSONMap{
			"email":      user.Email,
			"user_agent": strings.TrimSpace(req.UserAgent),
			"ip_address": strings.TrimSpace(req.IPAddress),
		},
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	logger.WithContext(ctx, s.log).Info("user signed in", zap.String("user_id", user.ID.String()))
	return &LoginResult{
		RawToken:  rawToken,
		SessionID: session.ID,
		UserID:    user.ID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Authenticate resolves a raw session token to a live session.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (*models.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, newAuthError(KindInvalidSession, nil)
	}

	session, err := s.sessions.FindByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, newAuthError(KindInvalidSession, err)
		}
		return nil, err
	}
	if session.RevokedAt != nil {
		return nil, newAuthError(KindSessionRevoked, nil)
	}
	if s.clock.Now().After(session.ExpiresAt) {
		return nil, newAuthError(KindSessionExpired, nil)
	}
	return session, nil
}

// Logout revokes the session behind rawToken.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	session, err := s.Authenticate(ctx, rawToken)
	if err != nil {
		return err
	}
	return s.sessions.Revoke(ctx, session.ID, s.clock.Now())
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
