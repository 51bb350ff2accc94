package todos

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xyz-asif/todoapp/internal/pkg/logger"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

type ServiceOption func(*Service)

// WithClock overrides the source of "today" used for overdue checks
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() Date {
	return DateOf(s.now())
}

func (s *Service) GetAllTodos(ctx context.Context) ([]Todo, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service) GetTodoByID(ctx context.Context, id int64) (*Todo, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateTodo persists a new todo. Any id on the input is discarded.
func (s *Service) CreateTodo(ctx context.Context, todo *Todo) (*Todo, error) {
	todo.ID = 0
	if todo.Priority == "" {
		todo.Priority = PriorityMedium
	}

	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	logger.Debug("created todo %d", todo.ID)
	return todo, nil
}

// UpdateTodo overwrites every writable field of the todo with details
func (s *Service) UpdateTodo(ctx context.Context, id int64, details *Todo) (*Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.Title = details.Title
	todo.Description = details.Description
	todo.Completed = details.Completed
	todo.Priority = details.Priority
	if todo.Priority == "" {
		todo.Priority = PriorityMedium
	}
	todo.Category = details.Category
	todo.DueDate = details.DueDate

	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to update todo %d: %w", id, err)
	}

	logger.Debug("updated todo %d", id)
	return todo, nil
}

func (s *Service) DeleteTodo(ctx context.Context, id int64) error {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, todo); err != nil {
		return fmt.Errorf("failed to delete todo %d: %w", id, err)
	}

	logger.Debug("deleted todo %d", id)
	return nil
}

// ToggleComplete flips the completed flag. Read and write are separate
// storage calls, so concurrent toggles of one todo can lose an update.
func (s *Service) ToggleComplete(ctx context.Context, id int64) (*Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	todo.Completed = !todo.Completed
	if err := s.repo.Save(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to toggle todo %d: %w", id, err)
	}

	logger.Debug("toggled todo %d to completed=%t", id, todo.Completed)
	return todo, nil
}

func (s *Service) GetCompletedTodos(ctx context.Context) ([]Todo, error) {
	return s.repo.FindByCompleted(ctx, true)
}

func (s *Service) GetIncompleteTodos(ctx context.Context) ([]Todo, error) {
	return s.repo.FindByCompleted(ctx, false)
}

func (s *Service) SearchTodosByTitle(ctx context.Context, term string) ([]Todo, error) {
	return s.repo.FindByTitleContainingIgnoreCase(ctx, term)
}

func (s *Service) GetTodosByCategory(ctx context.Context, category string) ([]Todo, error) {
	return s.repo.FindByCategory(ctx, category)
}

func (s *Service) GetTodosByPriority(ctx context.Context, priority Priority) ([]Todo, error) {
	return s.repo.FindByPriority(ctx, priority)
}

// GetOverdueTodos returns incomplete todos due strictly before today
func (s *Service) GetOverdueTodos(ctx context.Context) ([]Todo, error) {
	return s.repo.FindByDueDateBeforeAndCompletedFalse(ctx, s.today())
}

// GetAllCategories returns the distinct non-empty categories in byte order,
// so upper case sorts before lower case.
func (s *Service) GetAllCategories(ctx context.Context) ([]string, error) {
	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, todo := range todos {
		if todo.Category == nil || *todo.Category == "" || seen[*todo.Category] {
			continue
		}
		seen[*todo.Category] = true
		categories = append(categories, *todo.Category)
	}

	sort.Strings(categories)
	return categories, nil
}

func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	stats := &Stats{Total: len(todos)}
	for _, todo := range todos {
		if todo.Completed {
			stats.Completed++
			continue
		}
		stats.Active++
		if todo.DueDate != nil && todo.DueDate.Before(today) {
			stats.Overdue++
		}
	}
	return stats, nil
}
