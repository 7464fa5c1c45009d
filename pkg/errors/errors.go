// Package errors provides structured error handling for the application
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthenticated  ErrorCode = "UNAUTHENTICATED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInternal         ErrorCode = "INTERNAL_ERROR"
	CodeBackendError     ErrorCode = "BACKEND_ERROR"

	// Business logic errors
	CodeFolderProtected     ErrorCode = "FOLDER_PROTECTED"
	CodeFolderNotFound      ErrorCode = "FOLDER_NOT_FOUND"
	CodeRecipeNotFound      ErrorCode = "RECIPE_NOT_FOUND"
	CodeGroceryListNotFound ErrorCode = "GROCERY_LIST_NOT_FOUND"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the plain-language text shown in transient notices.
// It never exposes transport details beyond the server's own error text.
func (e *AppError) UserMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Message
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeFolderProtected:
		return http.StatusForbidden
	case CodeNotFound, CodeFolderNotFound, CodeRecipeNotFound, CodeGroceryListNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeBackendError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewUnauthenticatedError creates an unauthenticated error.
// The sync layer treats this as "nothing to show", not a failure.
func NewUnauthenticatedError() *AppError {
	return NewAppError(CodeUnauthenticated, "Not authenticated", "")
}

// NewBackendError creates an error for a failed backend call. serverText is
// the error text returned by the backend, if any.
func NewBackendError(action, serverText string, cause error) *AppError {
	details := fmt.Sprintf("Error %s", action)
	if serverText != "" {
		details = fmt.Sprintf("Error %s: %s", action, serverText)
	}
	return NewAppError(CodeBackendError, "Backend request failed", details).WithCause(cause)
}

// NewProtectedFolderError creates an error for mutations of the protected folder
func NewProtectedFolderError(folderID string) *AppError {
	return NewAppError(
		CodeFolderProtected,
		"Folder is protected",
		"The Uncategorized folder cannot be renamed or deleted",
	).WithMetadata("folder_id", folderID)
}

// NewFolderNotFoundError creates a folder not found error
func NewFolderNotFoundError(folderID string) *AppError {
	return NewAppError(
		CodeFolderNotFound,
		"Folder not found",
		fmt.Sprintf("Folder %q does not exist", folderID),
	).WithMetadata("folder_id", folderID)
}

// NewRecipeNotFoundError creates a recipe not found error
func NewRecipeNotFoundError(name string) *AppError {
	return NewAppError(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe %q does not exist", name),
	).WithMetadata("recipe_name", name)
}

// NewGroceryListNotFoundError creates a grocery list not found error
func NewGroceryListNotFoundError(id string) *AppError {
	return NewAppError(
		CodeGroceryListNotFound,
		"Grocery list not found",
		fmt.Sprintf("Grocery list %q does not exist", id),
	).WithMetadata("list_id", id)
}

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewAppError(CodeInternal, message, "").WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}
