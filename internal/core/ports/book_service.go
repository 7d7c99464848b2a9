package ports

import (
	"context"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

// BookInput carries the writable fields of a book.
type BookInput struct {
	Title    string
	Author   string
	Category string
	Rating   int
}

// BookService defines use-case operations for the book catalog.
type BookService interface {
	List(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	Create(ctx context.Context, input BookInput) (*domain.Book, error)
	Update(ctx context.Context, id string, input BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}
