package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sandesh007711/todoList/internal/api/metrics"
	"github.com/Sandesh007711/todoList/internal/core/domain"
	"github.com/Sandesh007711/todoList/internal/core/ports"
)

// TodoService implements the todo use cases on top of a TodoRepository.
// Completion timestamps are always assigned here on the server side; a
// client can only request the transition, never supply the instant.
type TodoService struct {
	repo   ports.TodoRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewTodoService(repo ports.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

func (s *TodoService) Create(ctx context.Context, input ports.CreateTodoInput) (*domain.Todo, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	todo := &domain.Todo{
		UserID:    input.OwnerID,
		Text:      text,
		Completed: false,
		CreatedAt: s.now(),
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.OwnerID).Msg("failed to create todo")
		return nil, err
	}

	metrics.TodosCreatedTotal.Inc()
	s.logger.Info().Str("todo_id", created.ID).Str("user_id", created.UserID).Msg("todo created")
	return created, nil
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *TodoService) Get(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

// Update applies a partial patch. The repository executes it as a single
// atomic point update; the stamp instant below is only used if the patch
// actually flips the todo from pending to completed.
func (s *TodoService) Update(ctx context.Context, input ports.UpdateTodoInput) (*domain.Todo, error) {
	patch := input.Patch
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, domain.ErrEmptyText
		}
		patch.Text = &text
	}

	// Mongo stores timestamps at millisecond precision; truncate so the
	// returned document compares equal to the stamp we sent.
	stamp := s.now().Truncate(time.Millisecond)
	updated, err := s.repo.Update(ctx, input.OwnerID, input.ID, patch, stamp)
	if err != nil {
		return nil, err
	}

	// A completed_at equal to the stamp we just passed means this call did
	// the pending→completed transition (an already completed todo keeps its
	// original stamp).
	if updated.Completed && updated.CompletedAt != nil && updated.CompletedAt.Equal(stamp) {
		metrics.TodosCompletedTotal.Inc()
		s.logger.Info().Str("todo_id", updated.ID).Time("completed_at", *updated.CompletedAt).Msg("todo completed")
	}

	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	metrics.TodosDeletedTotal.Inc()
	s.logger.Info().Str("todo_id", id).Str("user_id", ownerID).Msg("todo deleted")
	return nil
}

func (s *TodoService) History(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	return s.repo.ListCompleted(ctx, ownerID)
}

// HistoryByDate returns completed todos bucketed by UTC calendar day. The
// range defaults to [epoch, now] when either bound is omitted.
func (s *TodoService) HistoryByDate(ctx context.Context, q ports.HistoryQuery) ([]ports.HistoryBucket, error) {
	r := ports.HistoryRange{
		Start: time.Unix(0, 0).UTC(),
		End:   s.now(),
	}
	if q.Start != nil {
		r.Start = q.Start.UTC()
	}
	if q.End != nil {
		r.End = q.End.UTC()
	}

	buckets, err := s.repo.HistoryByDate(ctx, q.OwnerID, r)
	if err != nil {
		return nil, err
	}
	if buckets == nil {
		buckets = []ports.HistoryBucket{}
	}
	return buckets, nil
}

func (s *TodoService) Stats(ctx context.Context, ownerID string) (ports.TodoStats, error) {
	return s.repo.Stats(ctx, ownerID)
}
