// Package common defines sentinel errors shared by the useray stores, the
// sync engine and the operator shell. Callers should use errors.Is to match
// these values; producers wrap them with context via fmt.Errorf("...: %w").
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorDecode   = errors.New("decode error")

	// Lifecycle errors.
	ErrorValidation = errors.New("validation error")
	ErrorDuplicate  = errors.New("already exists")
)
