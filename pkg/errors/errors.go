package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeParsing represents payload/document parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeSchedule represents schedule configuration errors
	ErrorTypeSchedule ErrorType = "schedule"
	// ErrorTypeCatalog represents catalog/storage errors
	ErrorTypeCatalog ErrorType = "catalog"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *WorkerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *WorkerError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *WorkerError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeCache, ErrorTypePublisher, ErrorTypeCatalog:
		return true
	default:
		return false
	}
}

// New creates a new WorkerError
func New(errType ErrorType, source, message string, err error) *WorkerError {
	return &WorkerError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewParsing creates a new parsing error
func NewParsing(source, message string, err error) *WorkerError {
	return New(ErrorTypeParsing, source, message, err)
}

// NewSchedule creates a new schedule error
func NewSchedule(source, message string, err error) *WorkerError {
	return New(ErrorTypeSchedule, source, message, err)
}

// NewCatalog creates a new catalog error
func NewCatalog(source, message string, err error) *WorkerError {
	return New(ErrorTypeCatalog, source, message, err)
}

// NewCache creates a new cache error
func NewCache(source, message string, err error) *WorkerError {
	return New(ErrorTypeCache, source, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(source, message string, err error) *WorkerError {
	return New(ErrorTypePublisher, source, message, err)
}

// NewValidation creates a new validation error
func NewValidation(source, message string) *WorkerError {
	return New(ErrorTypeValidation, source, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *WorkerError {
	return New(ErrorTypeConfiguration, "", message, err)
}
