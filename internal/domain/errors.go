package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateMatter     = errors.New("matter description already exists")
	ErrNoRevisions         = errors.New("document has no revisions")
	ErrDocumentNotInMatter = errors.New("document does not belong to the source matter")
	ErrSameMatter          = errors.New("source and target matter are the same")
	ErrPersistence         = errors.New("persisting changes failed")
	ErrFilesystem          = errors.New("filesystem operation failed")
	ErrTransferIncomplete  = errors.New("transfer committed but file operation did not complete")
	ErrDocumentLocked      = errors.New("document is locked by another operation")
	ErrInvalidPath         = errors.New("path does not match the storage layout")
	ErrDestinationExists   = errors.New("destination already exists")
)

// Not-found sentinels for each entity family. All of them match ErrNotFound.
var (
	ErrMatterNotFound   = &notFoundError{what: "matter"}
	ErrDocumentNotFound = &notFoundError{what: "document"}
	ErrRevisionNotFound = &notFoundError{what: "revision"}
	ErrUserNotFound     = &notFoundError{what: "user"}
	ErrActivityNotFound = &notFoundError{what: "activity"}
	ErrMarkerNotFound   = &notFoundError{what: "transfer marker"}
)

type notFoundError struct {
	what string
}

func (e *notFoundError) Error() string { return e.what + " not found" }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports an invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is allows errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransferIncompleteError is returned when a transfer's database change was
// committed but its file operation failed. MarkerID identifies the staged
// operation a reconciliation pass can retry.
type TransferIncompleteError struct {
	MarkerID    uuid.UUID
	OperationID uuid.UUID
	Operation   TransferOp
	DocumentID  uuid.UUID
	Path        string
	Err         error
}

func (e *TransferIncompleteError) Error() string {
	return fmt.Sprintf("%s of document %s committed but file step failed (marker %s): %v",
		e.Operation, e.DocumentID, e.MarkerID, e.Err)
}

// Is allows errors.Is(err, ErrTransferIncomplete) and errors.Is(err, ErrFilesystem).
func (e *TransferIncompleteError) Is(target error) bool {
	return target == ErrTransferIncomplete || target == ErrFilesystem
}

func (e *TransferIncompleteError) Unwrap() error { return e.Err }
