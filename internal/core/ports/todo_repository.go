package ports

import (
	"context"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

// TodoRepository defines persistence operations for todos.
// Every method filters soft-deleted documents (valid=false). Methods taking
// ownerID additionally scope the query to that owner; a document owned by
// someone else is indistinguishable from an absent one
// (domain.ErrTodoNotFound in both cases).
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id, ownerID string) (*domain.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	// ListAll returns live todos across all owners (admin use).
	ListAll(ctx context.Context) ([]*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	// SoftDelete marks the todo invalid instead of removing it.
	SoftDelete(ctx context.Context, id, ownerID string) error
}
