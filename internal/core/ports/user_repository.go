package ports

import (
	"context"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Username and email uniqueness is enforced by the store's own constraints;
// Create must surface a constraint violation as domain.ErrUsernameExists or
// domain.ErrEmailExists rather than relying on caller pre-checks.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
