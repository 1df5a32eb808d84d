package recommend

import (
	"errors"
	"strings"

	"github.com/hyperjump/pakar/internal/validation"
)

var (
	// ErrNotReady is returned while no catalog snapshot has been loaded.
	ErrNotReady = errors.New("recommendation system not ready")
	// ErrInvalidQuery matches every *InvalidQueryError.
	ErrInvalidQuery = errors.New("invalid query")
)

// InvalidQueryError reports why a query was rejected. It is a caller error and never an
// empty result.
type InvalidQueryError struct {
	Fields []validation.FieldError
	cause  error
}

func (e *InvalidQueryError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidQuery.Error()
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return ErrInvalidQuery.Error() + ": " + strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrInvalidQuery) hold.
func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// Unwrap exposes the underlying validation or rule-base error.
func (e *InvalidQueryError) Unwrap() error {
	return e.cause
}

func invalidField(field, tag string, cause error) *InvalidQueryError {
	return &InvalidQueryError{
		Fields: []validation.FieldError{{Field: field, Tag: tag, Message: field + ": " + cause.Error()}},
		cause:  cause,
	}
}
