// ================== internal/features/todos/model.go ==================
package todos

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority accepts any casing of LOW, MEDIUM or HIGH
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToUpper(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown priority %q", apperrors.ErrValidation, s)
	}
}

// IsPriority reports whether s parses as a priority
func IsPriority(s string) bool {
	_, err := ParsePriority(s)
	return err == nil
}

// Todo represents a todo item
// @Description Todo item with all its properties
type Todo struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" bson:"_id" json:"id" example:"1"`
	Title       string    `gorm:"size:255;not null" bson:"title" json:"title" example:"Buy milk"`
	Description *string   `gorm:"type:text" bson:"description,omitempty" json:"description" example:"Two litres, semi-skimmed"`
	Completed   bool      `gorm:"not null;index" bson:"completed" json:"completed" example:"false"`
	Priority    Priority  `gorm:"size:10;not null;index" bson:"priority" json:"priority" example:"MEDIUM" enums:"LOW,MEDIUM,HIGH"`
	Category    *string   `gorm:"size:100;index" bson:"category,omitempty" json:"category" example:"Home"`
	DueDate     *Date     `gorm:"type:date;index" bson:"dueDate,omitempty" json:"dueDate" swaggertype:"string" example:"2026-12-31"`
	CreatedAt   time.Time `gorm:"autoCreateTime" bson:"createdAt" json:"createdAt" example:"2026-01-01T00:00:00Z"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" bson:"updatedAt" json:"updatedAt" example:"2026-01-01T00:00:00Z"`
}

func (Todo) TableName() string {
	return "todos"
}

// TodoRequest carries the client-writable fields for create and full update
// @Description Data required to create or replace a todo
type TodoRequest struct {
	Title       string  `json:"title" binding:"required,notblank,max=255" example:"Buy milk"`
	Description *string `json:"description" example:"Two litres, semi-skimmed"`
	Completed   bool    `json:"completed" example:"false"`
	Priority    string  `json:"priority" binding:"omitempty,priority" example:"HIGH" enums:"LOW,MEDIUM,HIGH"`
	Category    *string `json:"category" binding:"omitempty,max=100" example:"Home"`
	DueDate     *Date   `json:"dueDate" swaggertype:"string" example:"2026-12-31"`
}

// ToTodo builds an unsaved Todo from an already validated request
func (r *TodoRequest) ToTodo() *Todo {
	return &Todo{
		Title:       r.Title,
		Description: r.Description,
		Completed:   r.Completed,
		Priority:    Priority(r.Priority),
		Category:    r.Category,
		DueDate:     r.DueDate,
	}
}

// Stats summarises the whole list
type Stats struct {
	Total     int `json:"total" example:"12"`
	Completed int `json:"completed" example:"5"`
	Active    int `json:"active" example:"7"`
	Overdue   int `json:"overdue" example:"2"`
}
