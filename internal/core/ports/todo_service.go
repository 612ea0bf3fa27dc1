package ports

import (
	"context"
	"time"

	"github.com/Sandesh007711/todoList/internal/core/domain"
)

// CreateTodoInput carries the data needed to create a todo.
type CreateTodoInput struct {
	OwnerID string
	Text    string
}

// UpdateTodoInput carries a point update for one todo.
type UpdateTodoInput struct {
	OwnerID string
	ID      string
	Patch   TodoPatch
}

// HistoryQuery bounds the bucketed history endpoint. Nil bounds fall back to
// the epoch (start) and the current instant (end).
type HistoryQuery struct {
	OwnerID string
	Start   *time.Time
	End     *time.Time
}

// TodoService defines the use-case operations behind the /api/todos surface.
type TodoService interface {
	Create(ctx context.Context, input CreateTodoInput) (*domain.Todo, error)
	List(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	Get(ctx context.Context, ownerID, id string) (*domain.Todo, error)
	Update(ctx context.Context, input UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
	History(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	HistoryByDate(ctx context.Context, q HistoryQuery) ([]HistoryBucket, error)
	Stats(ctx context.Context, ownerID string) (TodoStats, error)
}
