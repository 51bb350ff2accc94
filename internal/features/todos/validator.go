package todos

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "github.com/xyz-asif/todoapp/pkg/errors"
)

const maxTitleLength = 255

// ValidateTodoRequest normalises a create/update body in place: trims text,
// upper-cases the priority and turns blank optional strings into nil.
func ValidateTodoRequest(req *TodoRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(req.Title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", apperrors.ErrValidation, maxTitleLength)
	}

	if req.Priority != "" {
		p, err := ParsePriority(req.Priority)
		if err != nil {
			return err
		}
		req.Priority = string(p)
	}

	req.Description = blankToNil(req.Description)
	req.Category = blankToNil(req.Category)

	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ParseTodoID parses a positive integer path id
func ParseTodoID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidID, raw)
	}
	return id, nil
}

// TranslateTodoError maps service errors to client-facing messages
func TranslateTodoError(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "Todo not found"
	case errors.Is(err, apperrors.ErrInvalidID):
		return "Invalid todo ID"
	case errors.Is(err, apperrors.ErrValidation):
		msg := err.Error()
		if i := strings.Index(msg, ": "); i >= 0 {
			return msg[i+2:]
		}
		return msg
	default:
		return "Something went wrong"
	}
}
