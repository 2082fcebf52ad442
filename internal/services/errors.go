// internal/services/errors.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidQuery   = errors.New("invalid query")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("forbidden")
	ErrMalformedData  = errors.New("malformed data")
	ErrPartialCompute = errors.New("partial compute failure")
)

// QueryError names the offending input. It matches ErrInvalidQuery.
type QueryError struct {
	Field  string
	Reason string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *QueryError) Unwrap() error { return ErrInvalidQuery }

func invalidQuery(field, format string, args ...interface{}) error {
	return &QueryError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

type SkippedItem struct {
	ItemID uuid.UUID `json:"item_id"`
	Reason string    `json:"reason"`
}

// PartialComputeError lists the items a recompute pass could not score.
type PartialComputeError struct {
	Skipped []SkippedItem
}

func (e *PartialComputeError) Error() string {
	return fmt.Sprintf("%s: %d items skipped", ErrPartialCompute, len(e.Skipped))
}

func (e *PartialComputeError) Unwrap() error { return ErrPartialCompute }

// notFound maps a missing row to ErrNotFound and leaves other errors as is.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
