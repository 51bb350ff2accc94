package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

// Repository is the storage contract for todos. FindByID and Save wrap
// apperrors.ErrNotFound when the id has no record.
type Repository interface {
	FindAll(ctx context.Context) ([]Todo, error)
	FindByID(ctx context.Context, id int64) (*Todo, error)
	// Save inserts when todo.ID is zero (assigning the id) and overwrites otherwise.
	Save(ctx context.Context, todo *Todo) error
	// Delete removes the todo; deleting a missing row is a no-op.
	Delete(ctx context.Context, todo *Todo) error
	FindByCompleted(ctx context.Context, completed bool) ([]Todo, error)
	FindByTitleContainingIgnoreCase(ctx context.Context, term string) ([]Todo, error)
	FindByCategory(ctx context.Context, category string) ([]Todo, error)
	FindByPriority(ctx context.Context, priority Priority) ([]Todo, error)
	FindByDueDateBeforeAndCompletedFalse(ctx context.Context, date Date) ([]Todo, error)
}

// SQLRepository stores todos in a relational table through gorm
type SQLRepository struct {
	db *gorm.DB
}

func NewSQLRepository(db *gorm.DB) (*SQLRepository, error) {
	if err := db.AutoMigrate(&Todo{}); err != nil {
		return nil, fmt.Errorf("failed to migrate todos table: %w", err)
	}
	return &SQLRepository{db: db}, nil
}

func (r *SQLRepository) FindAll(ctx context.Context) ([]Todo, error) {
	return r.find(ctx, r.db)
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*Todo, error) {
	var todo Todo
	err := r.db.WithContext(ctx).First(&todo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: todo %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &todo, nil
}

func (r *SQLRepository) Save(ctx context.Context, todo *Todo) error {
	if todo.ID == 0 {
		return r.db.WithContext(ctx).Create(todo).Error
	}

	result := r.db.WithContext(ctx).Model(todo).Select("*").Omit("id", "created_at").Updates(todo)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: todo %d", apperrors.ErrNotFound, todo.ID)
	}
	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, todo *Todo) error {
	return r.db.WithContext(ctx).Delete(&Todo{}, todo.ID).Error
}

func (r *SQLRepository) FindByCompleted(ctx context.Context, completed bool) ([]Todo, error) {
	return r.find(ctx, r.db.Where("completed = ?", completed))
}

func (r *SQLRepository) FindByTitleContainingIgnoreCase(ctx context.Context, term string) ([]Todo, error) {
	term = strings.ToLower(term)
	if r.db.Dialector.Name() != "sqlite" {
		pattern := "%" + escapeLike(term) + "%"
		return r.find(ctx, r.db.Where("LOWER(title) LIKE ? ESCAPE '!'", pattern))
	}

	// SQLite's LOWER folds ASCII only, so non-ASCII titles are matched here.
	all, err := r.find(ctx, r.db)
	if err != nil {
		return nil, err
	}

	matches := []Todo{}
	for _, todo := range all {
		if strings.Contains(strings.ToLower(todo.Title), term) {
			matches = append(matches, todo)
		}
	}
	return matches, nil
}

func (r *SQLRepository) FindByCategory(ctx context.Context, category string) ([]Todo, error) {
	return r.find(ctx, r.db.Where("category = ?", category))
}

func (r *SQLRepository) FindByPriority(ctx context.Context, priority Priority) ([]Todo, error) {
	return r.find(ctx, r.db.Where("priority = ?", priority))
}

func (r *SQLRepository) FindByDueDateBeforeAndCompletedFalse(ctx context.Context, date Date) ([]Todo, error) {
	return r.find(ctx, r.db.Where("due_date IS NOT NULL AND due_date < ? AND completed = ?", date, false))
}

func (r *SQLRepository) find(ctx context.Context, query *gorm.DB) ([]Todo, error) {
	todos := []Todo{}
	if err := query.WithContext(ctx).Order("id").Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Escapes LIKE wildcards with '!', which has no special meaning in MySQL or SQLite literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
