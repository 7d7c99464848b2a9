package ports

import (
	"context"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      string // defaults to "user" when empty
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	AccessToken string
	TokenType   string // always "bearer"
}

// AuthService implements the credential lifecycle: registration, login,
// password change, and profile lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	ChangePassword(ctx context.Context, identity domain.Identity, current, next string) error
	Profile(ctx context.Context, identity domain.Identity) (*domain.User, error)
}
