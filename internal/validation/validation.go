// Package validation collects per-field validation failures.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errors maps a field name to the reason it was rejected.
type Errors map[string]string

func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Err returns nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// As extracts validation errors from err.
func As(err error) (Errors, bool) {
	var verr Errors
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
