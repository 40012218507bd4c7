package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeEmbedding     = "EMBEDDING_ERROR"
	ErrCodeStore         = "STORE_ERROR"
	ErrCodeGeneration    = "GENERATION_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrInvalidChunkConfig = NewDomainError(ErrCodeValidation, "chunk overlap must be smaller than chunk size")
	ErrEmptyContent       = NewDomainError(ErrCodeValidation, "document content cannot be empty")
	ErrInvalidEmbedding   = NewDomainError(ErrCodeValidation, "embedding is missing or has wrong dimensions")
	ErrMissingCredentials = NewDomainError(ErrCodeValidation, "missing required credentials")
)

// Store errors
var (
	ErrDocumentNotFound  = NewDomainError(ErrCodeNotFound, "document not found")
	ErrDuplicateDocument = NewDomainError(ErrCodeAlreadyExists, "document with identical content already stored")
)

// EmbeddingError wraps a failed embedding service call.
func EmbeddingError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeEmbedding, "embedding service call failed", err)
}

// StoreError wraps a failed document store operation.
func StoreError(op string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeStore, fmt.Sprintf("document store %s failed", op), err)
}

// GenerationError wraps a failed chat completion call.
func GenerationError(err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeGeneration, "generation service call failed", err)
}

// IsCode reports whether err is, or wraps, a DomainError with the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
