package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// StringTag is a custom binding tag checked by a predicate on the field's string value
type StringTag struct {
	Name  string
	Valid func(string) bool
	// Message follows the field name when the tag fails, e.g. "must be one of A, B"
	Message string
}

var (
	mu       sync.RWMutex
	messages = map[string]string{}
)

// Register installs notblank plus the given tags on gin's binding validator.
// Call it during setup, before any struct is validated.
func Register(tags ...StringTag) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}

	mu.Lock()
	defer mu.Unlock()

	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		return err
	}
	for _, tag := range tags {
		valid := tag.Valid
		err := v.RegisterValidation(tag.Name, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		})
		if err != nil {
			return fmt.Errorf("failed to register tag %q: %w", tag.Name, err)
		}
		messages[tag.Name] = tag.Message
	}
	return nil
}

// MustRegister is Register for use during router setup
func MustRegister(tags ...StringTag) {
	if err := Register(tags...); err != nil {
		panic(err)
	}
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func tagMessage(tag string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	msg, ok := messages[tag]
	return msg, ok && msg != ""
}

// IsValidationError reports whether err came from struct tag validation
// rather than from decoding the body.
func IsValidationError(err error) bool {
	var errs validator.ValidationErrors
	return errors.As(err, &errs)
}

// Message turns binding errors into a short human readable sentence
func Message(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required", "notblank":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		default:
			if msg, ok := tagMessage(fe.Tag()); ok {
				msgs = append(msgs, field+" "+msg)
				continue
			}
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
