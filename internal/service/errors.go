package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists means a unique constraint was (or would be) violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotInList means a (user, recipe) relation row is absent. Distinct
	// from ErrNotFound: handlers report it as a client error, not a 404.
	ErrNotInList = errors.New("recipe is not in the list")
	// ErrPermissionDenied means a non-author tried to mutate a recipe.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError collects field-level messages for a rejected payload.
type ValidationError struct {
	Fields map[string][]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) add(field, format string, args ...interface{}) {
	e.Fields[field] = append(e.Fields[field], fmt.Sprintf(format, args...))
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Fields[f], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// isDuplicate reports whether err is a storage-level unique constraint
// violation. GORM translates these on postgres; the string checks cover
// the sqlite driver used in tests.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
