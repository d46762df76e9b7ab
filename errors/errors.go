// Package errors provides error handling for glbind.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints on CLI failures
//
// Usage:
//
//	// Wrap with context
//	doc, err := registry.Load(path)
//	if err != nil {
//	    return errors.Wrap(err, "failed to load registry")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run 'glbind' to regenerate the bindings")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// AssertionFailedf reports a broken internal invariant.
var AssertionFailedf = crdb.AssertionFailedf

// Sentinel errors shared by the registry loader, the generator and the CLI.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates a requested file, feature or extension does not exist
	ErrNotFound = New("not found")

	// ErrInvalidRegistry indicates a registry document could not be decoded or selected
	ErrInvalidRegistry = New("invalid registry")

	// ErrInvalidConfig indicates configuration values failed validation
	ErrInvalidConfig = New("invalid config")

	// ErrOutOfDate indicates generated bindings on disk differ from a fresh generation
	ErrOutOfDate = New("bindings are out of date")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsOutOfDateError checks if an error is or wraps ErrOutOfDate
func IsOutOfDateError(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// NewInvalidRegistryError creates an invalid-registry error with a formatted message
func NewInvalidRegistryError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidRegistry)
}

// NewInvalidConfigError creates an invalid-config error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidConfig)
}
