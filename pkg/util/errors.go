// Package util provides logging, error types and the small parsing helpers
// shared by both configuration dialects.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Parse failures are recovered where they occur; these exist
// so callers and tests can classify what was logged or returned.
var (
	ErrFormatUnknown       = errors.New("unknown configuration format")
	ErrNoVlanDatabase      = errors.New("no VLAN database found")
	ErrVlanLookup          = errors.New("VLAN not found")
	ErrSubnetParse         = errors.New("unable to parse subnet")
	ErrInterfaceRangeParse = errors.New("unable to parse interface range")
	ErrInvalidConfig       = errors.New("invalid configuration")
	ErrValidationFailed    = errors.New("validation failed")
	ErrNotFound            = errors.New("resource not found")
)

// FormatError reports a file in which no dialect marker was found.
type FormatError struct {
	File string
}

func (e *FormatError) Error() string {
	return "Unable to determinate the type of file. check validate the format of the file " + e.File
}

func (e *FormatError) Unwrap() error {
	return ErrFormatUnknown
}

// ParseError describes a single line or value that could not be interpreted.
type ParseError struct {
	File  string
	Kind  error // one of the sentinel errors above
	Input string
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%v: %q", e.Kind, e.Input)
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// NewParseError creates a parse error of the given kind
func NewParseError(file string, kind error, input string) *ParseError {
	return &ParseError{File: file, Kind: kind, Input: input}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
