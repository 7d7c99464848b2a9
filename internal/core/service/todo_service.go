package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/todo-system/internal/core/domain"
	"github.com/taskdesk/todo-system/internal/core/ports"
)

// TodoService implements owned todo operations. Ownership is enforced at the
// repository query level: a todo belonging to someone else is reported as
// absent, never as forbidden.
type TodoService struct {
	repo ports.TodoRepository
	log  zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, log zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, log: log}
}

func (s *TodoService) List(ctx context.Context, identity domain.Identity) ([]*domain.Todo, error) {
	return s.repo.ListByOwner(ctx, identity.UserID)
}

func (s *TodoService) Get(ctx context.Context, identity domain.Identity, id string) (*domain.Todo, error) {
	return s.repo.FindByID(ctx, id, identity.UserID)
}

func (s *TodoService) Create(ctx context.Context, identity domain.Identity, input ports.TodoInput) (*domain.Todo, error) {
	now := time.Now().UTC()
	todo := &domain.Todo{
		OwnerID:     identity.UserID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    input.Priority,
		Complete:    input.Complete,
		Valid:       true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", identity.UserID).Msg("failed to create todo")
		return nil, err
	}

	s.log.Info().Str("todo_id", created.ID).Str("owner_id", identity.UserID).Msg("todo created")
	return created, nil
}

func (s *TodoService) Update(ctx context.Context, identity domain.Identity, id string, input ports.TodoInput) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id, identity.UserID)
	if err != nil {
		return nil, err
	}

	todo.Title = input.Title
	todo.Description = input.Description
	todo.Priority = input.Priority
	todo.Complete = input.Complete
	todo.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, identity domain.Identity, id string) error {
	if err := s.repo.SoftDelete(ctx, id, identity.UserID); err != nil {
		return err
	}
	s.log.Info().Str("todo_id", id).Str("owner_id", identity.UserID).Msg("todo soft-deleted")
	return nil
}

func (s *TodoService) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	return s.repo.ListAll(ctx)
}
