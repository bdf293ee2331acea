// Package testutil provides shared helpers for teamcal tests.
//
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors simulate failures from outside the scheduler.
var (
	// ErrMockNetwork simulates a transport failure talking to the task backend.
	ErrMockNetwork = errors.New("network error")

	// ErrMockFileNotFound simulates a missing task export.
	ErrMockFileNotFound = errors.New("file not found")

	// ErrMockBackend simulates an unexpected backend failure.
	ErrMockBackend = errors.New("backend error")
)
