package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/todo-system/internal/core/domain"
	"github.com/taskdesk/todo-system/internal/core/ports"
)

const tokenType = "bearer"

// AuthService implements registration, login, password change, and profile
// lookup. It owns no mutable state; all persistence goes through the user
// repository and all token/hash work through the injected ports.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	codec    ports.TokenCodec
	limiter  ports.LoginLimiter
	audit    ports.AuditRecorder
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	limiter ports.LoginLimiter,
	audit ports.AuditRecorder,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &AuthService{
		users:    users,
		hasher:   hasher,
		codec:    codec,
		limiter:  limiter,
		audit:    audit,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates a new account with a hashed password. The uniqueness
// pre-checks give friendly errors, but the store's unique indexes are the
// authority: a duplicate-key error from Create maps to the same domain
// errors, so concurrent registrations cannot slip through.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if input.Username == "" || input.Password == "" || !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, domain.ErrUsernameExists
	}
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	s.audit.Record(domain.AuditEvent{Actor: created.Username, Action: domain.AuditRegister, Timestamp: now})

	return created, nil
}

// Login verifies the credentials and issues a signed access token. Unknown
// usernames and wrong passwords are deliberately indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	locked, err := s.limiter.TooMany(ctx, username)
	if err != nil {
		// Throttle store outage degrades open: log and continue.
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter unavailable")
	} else if locked {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Encode(user.Username, user.ID, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login counter")
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")
	s.audit.Record(domain.AuditEvent{Actor: user.Username, Action: domain.AuditLogin, Timestamp: time.Now().UTC()})

	return &ports.LoginResult{AccessToken: signed, TokenType: tokenType}, nil
}

// ChangePassword replaces the caller's password hash after verifying the
// current password.
func (s *AuthService) ChangePassword(ctx context.Context, identity domain.Identity, current, next string) error {
	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(current, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(next)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.log.Info().Str("username", user.Username).Msg("password changed")
	s.audit.Record(domain.AuditEvent{Actor: user.Username, Action: domain.AuditPasswordChange, Timestamp: time.Now().UTC()})

	return nil
}

// Profile returns the caller's own account record.
func (s *AuthService) Profile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	return s.users.FindByID(ctx, identity.UserID)
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
	s.audit.Record(domain.AuditEvent{Actor: username, Action: domain.AuditLoginFailed, Timestamp: time.Now().UTC()})
}
