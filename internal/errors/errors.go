// internal/errors/errors.go
package appErrors

import (
    "errors"
    "fmt"
    "sort"
    "strings"
)

// ErrContentNotFound is returned when an id matches no stored record
type ErrContentNotFound struct {
    ContentID int64
}

func (e *ErrContentNotFound) Error() string {
    return fmt.Sprintf("content with ID %d not found", e.ContentID)
}

func NewContentNotFound(id int64) error {
    return &ErrContentNotFound{ContentID: id}
}

// ErrNoContent means a query that must produce a document matched nothing
type ErrNoContent struct{}

func (e *ErrNoContent) Error() string {
    return "no content found for the given filters"
}

func NewNoContent() error {
    return &ErrNoContent{}
}

// ValidationError maps offending input fields to a message.
type ValidationError struct {
    Fields map[string]string
}

func (e *ValidationError) Error() string {
    keys := make([]string, 0, len(e.Fields))
    for k := range e.Fields {
        keys = append(keys, k)
    }
    sort.Strings(keys)

    parts := make([]string, 0, len(keys))
    for _, k := range keys {
        parts = append(parts, k+": "+e.Fields[k])
    }
    return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidation(field, msg string) error {
    return &ValidationError{Fields: map[string]string{field: msg}}
}

// IsNotFound covers both not-found shapes.
func IsNotFound(err error) bool {
    var nf *ErrContentNotFound
    var nc *ErrNoContent
    return errors.As(err, &nf) || errors.As(err, &nc)
}

func IsValidation(err error) bool {
    var ve *ValidationError
    return errors.As(err, &ve)
}
