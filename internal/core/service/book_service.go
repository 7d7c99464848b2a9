package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/todo-system/internal/core/domain"
	"github.com/taskdesk/todo-system/internal/core/ports"
)

// BookService implements catalog operations over the injected repository,
// keeping the catalog free of global state.
type BookService struct {
	repo ports.BookRepository
	log  zerolog.Logger
}

func NewBookService(repo ports.BookRepository, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, log: log}
}

func (s *BookService) List(ctx context.Context, filter ports.ListBooksFilter) ([]*domain.Book, error) {
	return s.repo.List(ctx, filter)
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) Create(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	now := time.Now().UTC()
	book := &domain.Book{
		Title:     input.Title,
		Author:    input.Author,
		Category:  input.Category,
		Rating:    input.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		s.log.Error().Err(err).Str("title", input.Title).Msg("failed to create book")
		return nil, err
	}
	return created, nil
}

func (s *BookService) Update(ctx context.Context, id string, input ports.BookInput) (*domain.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Author = input.Author
	book.Category = input.Category
	book.Rating = input.Rating
	book.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
