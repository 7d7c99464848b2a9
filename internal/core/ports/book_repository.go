package ports

import (
	"context"

	"github.com/taskdesk/todo-system/internal/core/domain"
)

// ListBooksFilter carries optional query parameters for listing books.
type ListBooksFilter struct {
	Category  string // exact match when non-empty
	MinRating int    // rating >= MinRating when > 0
}

// BookRepository defines persistence operations for the book catalog.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error
}
