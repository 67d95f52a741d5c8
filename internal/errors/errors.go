package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is by the API layer.
var (
	ErrCollectionNotFound      = errors.New("collection not found")
	ErrCollectionAlreadyExists = errors.New("collection already exists")
	ErrCandidateNotFound       = errors.New("candidate not found")
	ErrInvalidInput            = errors.New("invalid input")
	ErrSameName                = errors.New("same name provided")
	ErrUnsupportedDataset      = errors.New("unsupported dataset format")
)

// CollectionNotFoundError names the collection that was looked up.
type CollectionNotFoundError struct {
	Name string
}

func (e *CollectionNotFoundError) Error() string {
	return fmt.Sprintf("collection named '%s' not found", e.Name)
}

func (e *CollectionNotFoundError) Is(target error) bool {
	return target == ErrCollectionNotFound
}

func NewCollectionNotFoundError(name string) *CollectionNotFoundError {
	return &CollectionNotFoundError{Name: name}
}

// CollectionAlreadyExistsError names the conflicting collection.
type CollectionAlreadyExistsError struct {
	Name string
}

func (e *CollectionAlreadyExistsError) Error() string {
	return fmt.Sprintf("collection named '%s' already exists", e.Name)
}

func (e *CollectionAlreadyExistsError) Is(target error) bool {
	return target == ErrCollectionAlreadyExists
}

func NewCollectionAlreadyExistsError(name string) *CollectionAlreadyExistsError {
	return &CollectionAlreadyExistsError{Name: name}
}

// CandidateNotFoundError identifies a missing candidate, optionally within a collection.
type CandidateNotFoundError struct {
	CandidateID string
	Collection  string
}

func (e *CandidateNotFoundError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("candidate with ID '%s' not found in collection '%s'", e.CandidateID, e.Collection)
	}
	return fmt.Sprintf("candidate with ID '%s' not found", e.CandidateID)
}

func (e *CandidateNotFoundError) Is(target error) bool {
	return target == ErrCandidateNotFound
}

func NewCandidateNotFoundError(candidateID, collection string) *CandidateNotFoundError {
	return &CandidateNotFoundError{CandidateID: candidateID, Collection: collection}
}

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SameNameError is returned when a rename targets the current name.
type SameNameError struct {
	Name string
}

func (e *SameNameError) Error() string {
	return fmt.Sprintf("new name '%s' is the same as the current name", e.Name)
}

func (e *SameNameError) Is(target error) bool {
	return target == ErrSameName
}

func NewSameNameError(name string) *SameNameError {
	return &SameNameError{Name: name}
}

// DatasetError wraps a failure to read one dataset file.
type DatasetError struct {
	Path string
	Err  error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("dataset %s: %v", e.Path, e.Err)
}

func (e *DatasetError) Unwrap() error { return e.Err }

func NewDatasetError(path string, err error) *DatasetError {
	return &DatasetError{Path: path, Err: err}
}
