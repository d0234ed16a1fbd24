package testutil

import (
	"errors"
)

const DatabaseError = "database error occurred"

type OperationResult[T any] struct {
	Data T
	Err  error
}

// Return a generic typed error return for a Database call.
func GetMockRepoError[T any]() *OperationResult[T] {
	return NewErrorResult[T](DatabaseError)
}

func NewErrorResult[T any](err string) *OperationResult[T] {
	return &OperationResult[T]{
		Data: *new(T),
		Err:  errors.New(err),
	}
}

// Wrap a generic Data into a OperationResult struct.
func NewSuccessResult[T any](data T) *OperationResult[T] {
	return &OperationResult[T]{
		Data: data,
		Err:  nil,
	}
}

// IntPtr returns a pointer to the value.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to the value.
func StringPtr(v string) *string {
	return &v
}
