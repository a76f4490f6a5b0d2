package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JeffersonNayron/Turma-B/config"
	"github.com/JeffersonNayron/Turma-B/models"
	"github.com/JeffersonNayron/Turma-B/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("unauthorized")

const minPasswordLength = 6

// UserRepository is the account storage the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

// TokenSigner issues and verifies the tokens that name a session.
type TokenSigner interface {
	GenerateToken(sessionID string, role models.Role, issuedAt, expiresAt time.Time) (string, error)
	ParseToken(token string) (*utils.Claims, error)
}

// AuthService logs accounts in by password and tracks their sessions.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	tokens   TokenSigner
	ttl      time.Duration
	now      func() time.Time
}

func NewAuthService(users UserRepository, sessions SessionStore, tokens TokenSigner, ttl time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login finds the account whose password matches and opens a session for it.
func (s *AuthService) Login(ctx context.Context, password string) (string, Session, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return "", Session{}, err
	}

	for _, user := range users {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			continue
		}

		now := s.now()
		session := Session{
			ID:        utils.NewSessionID(),
			Role:      user.Role,
			CreatedAt: now,
			ExpiresAt: now.Add(s.ttl),
		}
		if err := s.sessions.Save(ctx, session); err != nil {
			return "", Session{}, err
		}

		token, err := s.tokens.GenerateToken(session.ID, session.Role, session.CreatedAt, session.ExpiresAt)
		if err != nil {
			if delErr := s.sessions.Delete(ctx, session.ID); delErr != nil {
				config.Logger.Warnw("failed to drop unsigned session", "error", delErr, "sessionID", session.ID)
			}
			return "", Session{}, fmt.Errorf("sign token: %w", err)
		}

		config.Logger.Infow("login", "userID", user.ID, "role", user.Role, "sessionID", session.ID)
		return token, session, nil
	}

	config.Logger.Warnw("login rejected")
	return "", Session{}, ErrUnauthorized
}

// Authenticate resolves a token to its live session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (Session, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	session, err := s.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return Session{}, fmt.Errorf("%w: session revoked", ErrUnauthorized)
	}
	if err != nil {
		return Session{}, err
	}
	return session, nil
}

// Logout revokes the session behind token. Unknown or invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return err
	}

	config.Logger.Infow("logout", "sessionID", claims.SessionID)
	return nil
}

// CreateUser stores a new account with a bcrypt hash of password.
func (s *AuthService) CreateUser(ctx context.Context, role models.Role, password string) (models.User, error) {
	if _, err := models.ParseRole(string(role)); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(password) < minPasswordLength {
		return models.User{}, fmt.Errorf("%w: password must have at least %d characters", ErrValidation, minPasswordLength)
	}

	// Login identifies accounts by password alone, so passwords must be unique.
	existing, err := s.users.List(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, user := range existing {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
			return models.User{}, fmt.Errorf("%w: password already used by another account", ErrValidation)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Role: role, PasswordHash: string(hash)}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.User{}, err
	}

	config.Logger.Infow("user created", "userID", user.ID, "role", role)
	return user, nil
}

// EnsureAdmin creates an admin account from password when none exists yet.
// It reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, password string) (bool, error) {
	if password == "" {
		return false, nil
	}

	count, err := s.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.CreateUser(ctx, models.RoleAdmin, password); err != nil {
		return false, err
	}
	return true, nil
}
