package application

import (
	"errors"
	"sort"
	"strings"

	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

var (
	ErrArticleNotFound    = errors.New("article not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrNoFile          = errors.New("no valid file uploaded")
	ErrEmptyFile       = errors.New("uploaded file is empty")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
)

// ValidationError lists the offending fields with a message each.
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
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func validate(s any) error {
	if err := validation.Struct(s); err != nil {
		return &ValidationError{Fields: validation.ToDetails(err)}
	}
	return nil
}
