// Package api provides the HTTP surface of the suggestion service.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateCollectionName validates a collection name parameter
func ValidateCollectionName(name string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if name == "" {
		result.AddError("name", "Collection name is required")
		return result
	}

	if strings.TrimSpace(name) != name {
		result.AddError("name", "Collection name cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateCandidateID validates a candidate ID
func ValidateCandidateID(id string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if id == "" {
		result.AddError("id", "Candidate ID is required")
		return result
	}

	if strings.TrimSpace(id) != id {
		result.AddError("id", "Candidate ID cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateCollectionSettings validates collection settings for creation
func ValidateCollectionSettings(settings *config.CollectionSettings) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if settings == nil {
		result.AddError("settings", "Collection settings are required")
		return result
	}

	if settings.Name == "" {
		result.AddError("name", "Collection name is required")
	}

	settings.ApplyDefaults()

	if conflicts := settings.ValidateFieldNames(); len(conflicts) > 0 {
		for _, conflict := range conflicts {
			result.AddError("field_validation", conflict)
		}
	}

	return result
}

// ValidateCandidates validates a slice of candidates for upsert
func ValidateCandidates(candidates []model.Candidate) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if len(candidates) == 0 {
		result.AddError("candidates", "No candidates provided")
		return result
	}

	for i, c := range candidates {
		if strings.TrimSpace(c.ID) == "" {
			result.AddError(fmt.Sprintf("candidates[%d].id", i), "Candidate ID cannot be empty or whitespace-only")
			continue
		}
		if strings.TrimSpace(c.Name) == "" {
			result.AddError(fmt.Sprintf("candidates[%d].name", i), "Candidate name cannot be empty or whitespace-only")
		}
	}

	return result
}

// ValidatePagination validates pagination parameters
func ValidatePagination(page, pageSize int) (int, int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return page, pageSize, result
}

// ValidateRenameRequest validates a rename collection request
func ValidateRenameRequest(oldName, newName string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if oldName == "" {
		result.AddError("oldName", "Current collection name is required")
	}

	if newName == "" {
		result.AddError("new_name", "New name is required and cannot be empty")
	}

	if strings.TrimSpace(newName) != newName {
		result.AddError("new_name", "New name cannot have leading or trailing whitespace")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}

// ValidateQueryBinding validates query parameter binding
func ValidateQueryBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindQuery(target); err != nil {
		result.AddError("query_parameters", "Invalid query parameters: "+err.Error())
	}

	return result
}
