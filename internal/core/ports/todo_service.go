package ports

import (
	"context"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

// TodoInput carries the writable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// TodoService defines use-case operations for todos. All operations are
// scoped to the given identity's ownership except ListAll.
type TodoService interface {
	List(ctx context.Context, identity domain.Identity) ([]*domain.Todo, error)
	Get(ctx context.Context, identity domain.Identity, id string) (*domain.Todo, error)
	Create(ctx context.Context, identity domain.Identity, input TodoInput) (*domain.Todo, error)
	Update(ctx context.Context, identity domain.Identity, id string, input TodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, identity domain.Identity, id string) error
	// ListAll returns every live todo regardless of owner. Callers are
	// expected to gate this behind the admin role policy.
	ListAll(ctx context.Context) ([]*domain.Todo, error)
}
