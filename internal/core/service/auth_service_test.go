package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/todo-system/internal/core/domain"
	"github.com/taskdesk/todo-system/internal/core/ports"
	"github.com/taskdesk/todo-system/internal/pkg/password"
	"github.com/taskdesk/todo-system/internal/pkg/token"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	// Mirror the store's unique-index guarantee.
	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUsernameExists
		}
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("u%d", r.nextID)
	r.byID[clone.ID] = clone
	return cloneUser(clone), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type stubLimiter struct {
	locked   bool
	failures int
	resets   int
}

func (l *stubLimiter) TooMany(context.Context, string) (bool, error) { return l.locked, nil }
func (l *stubLimiter) RecordFailure(context.Context, string) error   { l.failures++; return nil }
func (l *stubLimiter) Reset(context.Context, string) error           { l.resets++; return nil }

// failingLimiter simulates a throttle store outage: every call errors.
type failingLimiter struct{}

var errLimiterDown = errors.New("redis: connection refused")

func (l *failingLimiter) TooMany(context.Context, string) (bool, error) { return false, errLimiterDown }
func (l *failingLimiter) RecordFailure(context.Context, string) error   { return errLimiterDown }
func (l *failingLimiter) Reset(context.Context, string) error           { return errLimiterDown }

type stubAudit struct {
	events []domain.AuditEvent
}

func (a *stubAudit) Record(e domain.AuditEvent) { a.events = append(a.events, e) }

func newAuthService(repo ports.UserRepository, limiter ports.LoginLimiter, audit ports.AuditRecorder) *AuthService {
	return NewAuthService(
		repo,
		password.NewBcryptHasher(4),
		token.NewJWTCodec("secret"),
		limiter,
		audit,
		time.Hour,
		zerolog.Nop(),
	)
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubLimiter{}, &stubAudit{})

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Username:  "alice",
		Email:     "a@x.com",
		FirstName: "Alice",
		LastName:  "Doe",
		Password:  "secret123",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, user.Role)
	}
	if !user.Active {
		t.Fatalf("expected new user to be active")
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password, got %q", user.PasswordHash)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubLimiter{}, &stubAudit{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	// Same username, different email.
	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "other@x.com", Password: "pw"})
	if !errors.Is(err, domain.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubLimiter{}, &stubAudit{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "bob", Email: "a@x.com", Password: "pw"})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthService_Register_StoreConstraintWins(t *testing.T) {
	// Pre-checks can race; the duplicate-key error from the store must map
	// to the same domain error.
	repo := newStubUserRepo()
	repo.createErr = domain.ErrUsernameExists
	svc := newAuthService(repo, &stubLimiter{}, &stubAudit{})

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw"})
	if !errors.Is(err, domain.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists from store, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubLimiter{}, &stubAudit{})

	_, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw", Role: "superuser"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{}
	svc := newAuthService(repo, limiter, &stubAudit{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.TokenType != "bearer" {
		t.Fatalf("expected token_type bearer, got %q", result.TokenType)
	}

	identity, err := token.NewJWTCodec("secret").Decode(result.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not decode: %v", err)
	}
	if identity.Username != "alice" || identity.UserID == "" {
		t.Fatalf("unexpected identity from token: %+v", identity)
	}
	if limiter.resets != 1 {
		t.Fatalf("expected limiter reset after success, got %d", limiter.resets)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	limiter := &stubLimiter{}
	svc := newAuthService(repo, limiter, &stubAudit{})

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "secret123"})

	_, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if limiter.failures != 1 {
		t.Fatalf("expected 1 recorded failure, got %d", limiter.failures)
	}
}

func TestAuthService_Login_UnknownUserIsUndifferentiated(t *testing.T) {
	svc := newAuthService(newStubUserRepo(), &stubLimiter{}, &stubAudit{})

	// Absent user must produce the same error as a wrong password.
	_, err := svc.Login(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubLimiter{locked: true}, &stubAudit{})

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "secret123"})

	_, err := svc.Login(context.Background(), "alice", "secret123")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterOutageDegradesOpen(t *testing.T) {
	// A throttle store outage must not take logins down with it: the check
	// degrades open and the credentials alone decide the outcome.
	repo := newStubUserRepo()
	svc := newAuthService(repo, &failingLimiter{}, &stubAudit{})

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "secret123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "alice", "secret123")
	if err != nil {
		t.Fatalf("login should succeed with limiter down, got %v", err)
	}
	if result.AccessToken == "" {
		t.Fatalf("expected a token despite limiter outage")
	}
}

func TestAuthService_Login_LimiterOutageDoesNotMaskBadPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &failingLimiter{}, &stubAudit{})

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "secret123"})

	// RecordFailure errors while the counter is down; the caller still sees
	// the credential error, never the store error.
	_, err := svc.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ChangePassword / Profile
// ---------------------------------------------------------------------------

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubLimiter{}, &stubAudit{})

	user, err := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "oldpass1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	identity := domain.Identity{Username: user.Username, UserID: user.ID}

	if err := svc.ChangePassword(context.Background(), identity, "oldpass1", "newpass1"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := svc.Login(context.Background(), "alice", "oldpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.Login(context.Background(), "alice", "newpass1"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubLimiter{}, &stubAudit{})

	user, _ := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "oldpass1"})
	identity := domain.Identity{Username: user.Username, UserID: user.ID}

	err := svc.ChangePassword(context.Background(), identity, "nope", "newpass1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Profile(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, &stubLimiter{}, &stubAudit{})

	user, _ := svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw"})

	got, err := svc.Profile(context.Background(), domain.Identity{Username: "alice", UserID: user.ID})
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if got.Username != "alice" || got.Email != "a@x.com" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestAuthService_Audit(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAudit{}
	svc := newAuthService(repo, &stubLimiter{}, audit)

	_, _ = svc.Register(context.Background(), ports.RegisterInput{Username: "alice", Email: "a@x.com", Password: "secret123"})
	_, _ = svc.Login(context.Background(), "alice", "secret123")
	_, _ = svc.Login(context.Background(), "alice", "wrong")

	want := []string{domain.AuditRegister, domain.AuditLogin, domain.AuditLoginFailed}
	if len(audit.events) != len(want) {
		t.Fatalf("expected %d audit events, got %d", len(want), len(audit.events))
	}
	for i, action := range want {
		if audit.events[i].Action != action {
			t.Fatalf("event[%d]: expected %q, got %q", i, action, audit.events[i].Action)
		}
	}
}
