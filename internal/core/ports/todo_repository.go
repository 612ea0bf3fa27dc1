package ports

import (
	"context"
	"time"

	"github.com/Sandesh007711/todoList/internal/core/domain"
)

// TodoPatch carries a partial update. Nil fields are left untouched.
//
// CompletedAt is deliberately absent: the completion timestamp is
// server-assigned. The repository stamps it with the supplied instant when
// Completed transitions false→true, clears it on true, keeps the original
// stamp when the todo is already completed, and never touches it when
// Completed is nil. All of that happens inside a single atomic point update.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

// HistoryRange bounds the bucketed history query. Both ends are inclusive.
type HistoryRange struct {
	Start time.Time
	End   time.Time
}

// HistoryItem is one completed todo inside a day bucket.
type HistoryItem struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	CompletedAt time.Time `json:"completedAt"`
}

// HistoryBucket groups the todos completed on one calendar day (UTC).
// Date uses the stable YYYY-MM-DD form so ordering and equality are
// locale-independent.
type HistoryBucket struct {
	Date  string        `json:"date"`
	Todos []HistoryItem `json:"todos"`
	Count int64         `json:"count"`
}

// TodoStats holds the per-owner counters returned by the profile endpoint.
type TodoStats struct {
	TotalTodos     int64 `json:"totalTodos"`
	CompletedTodos int64 `json:"completedTodos"`
	PendingTodos   int64 `json:"pendingTodos"`
}

// TodoRepository defines persistence operations for todos. Every method is
// scoped by ownerID; an id that exists under a different owner behaves
// exactly like a missing id (domain.ErrTodoNotFound), so ownership can never
// be probed through the API.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	// ListByOwner returns the owner's todos ordered by created_at descending.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	FindByID(ctx context.Context, ownerID, id string) (*domain.Todo, error)
	// Update applies patch as one atomic read-modify-write on the stored
	// record and returns the post-update document. now is the completion
	// stamp used if the patch flips the todo to completed.
	Update(ctx context.Context, ownerID, id string, patch TodoPatch, now time.Time) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
	// ListCompleted returns completed todos ordered by completed_at descending.
	ListCompleted(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	// HistoryByDate buckets completed todos by UTC calendar day within r,
	// newest day first. Read-only and idempotent over unchanged data.
	HistoryByDate(ctx context.Context, ownerID string, r HistoryRange) ([]HistoryBucket, error)
	Stats(ctx context.Context, ownerID string) (TodoStats, error)
}
