package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a question or its parameters are rejected.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested entity is not in the graph.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when a knowledge base or model call fails.
	ErrExternalService = errors.New("external service error")
	// ErrUnknownSource is returned for an ingestion source without a connector.
	ErrUnknownSource = errors.New("unknown source")
)

// ValidationError names the request field that was rejected.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// WrapError prefixes err with msg, keeping it matchable with errors.Is.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}
