package workflow

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"culinary-be/internal/validation"
)

var (
	ErrNothingToDelete  = errors.New("nothing marked for deletion")
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrLineIndex        = errors.New("order line index out of range")
	ErrLastLine         = errors.New("an order needs at least one line")
	ErrUnknownItem      = errors.New("item is not in the current inventory")
)

// ValidationError lists every rejected field of a draft. No store call is
// made when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	if v, ok := validation.As(err); ok {
		fields := make(map[string]string, len(v))
		for k, msg := range v {
			fields[k] = msg
		}
		return &ValidationError{Fields: fields}
	}
	return err
}
