package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/podstore/podstore/internal/models"
	"github.com/podstore/podstore/internal/utils"
)

// userStore is the slice of the user repository the auth service needs.
type userStore interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Create(user *models.User) error
}

// sessionDenylist records signed-out tokens until they expire on their own.
type sessionDenylist interface {
	Revoke(ctx context.Context, jti string, remaining time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthService owns account registration, session issuance and role
// resolution. A visitor resolves to one of three roles: anonymous (no
// session), authenticated, or admin (session plus a truthy is_admin flag
// on the users row).
type AuthService struct {
	users    userStore
	jwt      *utils.JWTManager
	denylist sessionDenylist
}

// NewAuthService constructs an AuthService.
func NewAuthService(users userStore, jwtManager *utils.JWTManager, denylist sessionDenylist) *AuthService {
	return &AuthService{
		users:    users,
		jwt:      jwtManager,
		denylist: denylist,
	}
}

// Register creates a new non-admin account and returns a session token.
func (s *AuthService) Register(email, password, name string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if existing, err := s.users.GetByEmail(email); err == nil && existing != nil {
		return "", nil, utils.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		IsAdmin:      false,
	}
	if err := s.users.Create(user); err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to create account")
		return "", nil, err
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login verifies credentials and returns a session token. Failures are
// reported uniformly so the response does not reveal which field was wrong.
func (s *AuthService) Login(email, password string) (string, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(email)
	if err != nil {
		log.Debug().Str("email", email).Msg("login failed: unknown account")
		return "", nil, utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("email", email).Msg("login failed: password mismatch")
		return "", nil, utils.ErrInvalidCredentials
	}

	token, err := s.jwt.Generate(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	log.Info().Str("user_id", user.ID).Msg("login successful")
	return token, user, nil
}

// Logout revokes the session carried by the given claims. Subsequent
// requests with the same token fail validation immediately, which is how
// clients observe the auth-state change.
func (s *AuthService) Logout(ctx context.Context, claims *utils.SessionClaims) error {
	remaining := time.Until(claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(ctx, claims.ID, remaining); err != nil {
		return err
	}
	log.Info().Str("user_id", claims.UserID).Msg("session revoked")
	return nil
}

// ValidateSession parses a token, rejects revoked sessions, and returns
// the claims.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*utils.SessionClaims, error) {
	claims, err := s.jwt.Validate(token)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}
	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Redis being unreachable must not lock every user out; log and
		// fall back to signature validity alone.
		log.Warn().Err(err).Msg("denylist check failed, accepting token on signature only")
	} else if revoked {
		return nil, utils.ErrInvalidToken
	}
	return claims, nil
}

// ResolveRole maps an authenticated user ID to a role by reading the
// is_admin flag. A missing row is an authenticated non-admin, never an
// error.
func (s *AuthService) ResolveRole(userID string) (models.Role, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RoleAuthenticated, nil
		}
		return models.RoleAuthenticated, err
	}
	return models.RoleOf(user.IsAdmin), nil
}

// ResolveSession turns an optional bearer token into a role and, when
// authenticated, the matching user. An empty or invalid token resolves to
// anonymous rather than an error: role display is never a failure.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (models.Role, *models.User) {
	if token == "" {
		return models.RoleAnonymous, nil
	}
	claims, err := s.ValidateSession(ctx, token)
	if err != nil {
		return models.RoleAnonymous, nil
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		// Session is valid but the row is gone or unreadable: authenticated,
		// non-admin, per the role-resolution contract.
		return models.RoleAuthenticated, nil
	}
	return models.RoleOf(user.IsAdmin), user
}
