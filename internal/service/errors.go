package service

import (
	"errors"
	"fmt"

	"finance-tracker/internal/repository"

	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NotFoundError reports that a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// PersistenceError wraps a storage failure. Its message is never shown to clients.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// storageError converts a repository error into one of the service error kinds
// and logs anything that is not a plain miss.
func storageError(logger *zap.Logger, op, resource string, id int64, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return &NotFoundError{Resource: resource, ID: id}
	case errors.Is(err, repository.ErrUnknownField):
		return invalid("field", "unsupported field")
	case errors.Is(err, repository.ErrInvalidCategory):
		return invalid("category_id", "unknown category")
	}

	logger.Error("Storage operation failed",
		zap.String("op", op),
		zap.String("resource", resource),
		zap.Int64("id", id),
		zap.Error(err),
	)
	return &PersistenceError{Op: op, Err: err}
}
