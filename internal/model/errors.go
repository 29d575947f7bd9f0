package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrFetchFailed matches every FetchError.
	ErrFetchFailed = errors.New("fetch failed")
)

// ValidationError reports an empty required field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FetchError collapses every upstream problem (remote error, transport, bad shape) into one kind.
type FetchError struct {
	Ticker string
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.Ticker, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.Ticker, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }
