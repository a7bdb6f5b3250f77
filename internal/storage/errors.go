package storage

import "errors"

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTriple is returned when a triple lacks a subject, predicate or object.
	ErrInvalidTriple = errors.New("triple requires subject, predicate and object")
)
