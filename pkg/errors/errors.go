// Package errors provides custom error types for the token synchronizer.
// These errors enable programmatic error checking with errors.Is / errors.As
// and carry enough context to tell the operator which record, page or file
// was affected.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As re-export the standard library helpers so callers only import one errors package.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrRateLimited indicates that the upstream rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstreamUnavailable indicates that the upstream API is temporarily unavailable
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrUpstreamFetch indicates that a page of upstream records could not be fetched
	ErrUpstreamFetch = errors.New("upstream fetch failed")

	// ErrMissingImage indicates an upstream record without a large image reference
	ErrMissingImage = errors.New("missing image reference")

	// ErrUnclassifiable indicates a type line outside the known classification taxonomy
	ErrUnclassifiable = errors.New("unclassifiable type line")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an unsuccessful response from the upstream API
type APIError struct {
	Source     string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrUpstreamUnavailable
	}
	return false
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// FetchError reports a failed page of an upstream search. Records collected
// before the failing page are still returned alongside it.
type FetchError struct {
	Query string
	Page  int
	Err   error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching page %d of query %q: %v", e.Page, e.Query, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FetchError) Is(target error) bool {
	return target == ErrUpstreamFetch
}

// NewFetchError creates a new FetchError
func NewFetchError(query string, page int, err error) *FetchError {
	return &FetchError{Query: query, Page: page, Err: err}
}

// MissingImageError is returned when an upstream record has no large image.
// The record cannot be turned into a catalog line without one.
type MissingImageError struct {
	Name string
}

// Error implements the error interface
func (e *MissingImageError) Error() string {
	return fmt.Sprintf("record %q has no large image reference", e.Name)
}

// Is implements errors.Is support
func (e *MissingImageError) Is(target error) bool {
	return target == ErrMissingImage
}

// UnclassifiableTypeError is a soft error: the entry is still produced, but
// its classification needs a manual edit.
type UnclassifiableTypeError struct {
	Name     string
	TypeLine string
}

// Error implements the error interface
func (e *UnclassifiableTypeError) Error() string {
	return fmt.Sprintf("could not determine maintype for %s (type line %q), please edit manually", e.Name, e.TypeLine)
}

// Is implements errors.Is support
func (e *UnclassifiableTypeError) Is(target error) bool {
	return target == ErrUnclassifiable
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// IsFetchError checks if an error is an upstream page failure
func IsFetchError(err error) bool {
	return errors.Is(err, ErrUpstreamFetch)
}

// IsMissingImage checks if an error is a missing image error
func IsMissingImage(err error) bool {
	return errors.Is(err, ErrMissingImage)
}

// IsUnclassifiable checks if an error is a soft classification failure
func IsUnclassifiable(err error) bool {
	return errors.Is(err, ErrUnclassifiable)
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "xml", "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "load", "fetch", "sync"
	Resource  string // "catalog", "cache", "records"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
