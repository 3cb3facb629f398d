package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/lessonlens/internal/catalog"
)

// ErrInvalidReference matches any *InvalidReferenceError.
var ErrInvalidReference = errors.New("invalid skill reference")

// NotFoundError indicates the requested domain or group does not exist.
type NotFoundError struct {
	Kind string // "domain" or "group"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error { return catalog.ErrNotFound }

// InvalidReferenceError lists target skill ids absent from the domain,
// together with every valid id so the caller can correct the request.
type InvalidReferenceError struct {
	Domain  string
	Invalid []string
	Valid   []string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("unknown skill ids in domain %q: %s", e.Domain, strings.Join(e.Invalid, ", "))
}

func (e *InvalidReferenceError) Unwrap() error { return ErrInvalidReference }
