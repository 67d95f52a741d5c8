package api

import (
	stderrors "errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lithammer/fuzzysearch/fuzzy"

	internalErrors "github.com/gcbaptista/go-suggest/internal/errors"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeCollectionNotFound ErrorCode = "COLLECTION_NOT_FOUND"
	ErrorCodeCandidateNotFound  ErrorCode = "CANDIDATE_NOT_FOUND"
	ErrorCodeCollectionExists   ErrorCode = "COLLECTION_ALREADY_EXISTS"
	ErrorCodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	ErrorCodeInvalidJSON        ErrorCode = "INVALID_JSON"
	ErrorCodeInvalidQuery       ErrorCode = "INVALID_QUERY"
	ErrorCodeSameName           ErrorCode = "SAME_NAME_PROVIDED"
	ErrorCodeRateLimited        ErrorCode = "RATE_LIMITED"

	// Server Error Codes (5xx)
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
	ErrorCodeSearchFailed      ErrorCode = "SEARCH_FAILED"
	ErrorCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
)

// maxSuggestions caps the did_you_mean list.
const maxSuggestions = 3

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error      string        `json:"error"`
	Code       ErrorCode     `json:"code"`
	Message    string        `json:"message"`
	Details    []ErrorDetail `json:"details,omitempty"`
	DidYouMean []string      `json:"did_you_mean,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
	RequestID  string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

func send(c *gin.Context, statusCode int, errorResponse *APIError) {
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}
	c.JSON(statusCode, errorResponse)
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	send(c, statusCode, APIErrorResponse(code, message, details...))
}

// SendStructuredValidationError sends a validation error with structured details
func SendStructuredValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendCollectionNotFoundError sends a 404 with the closest existing collection names.
func SendCollectionNotFoundError(c *gin.Context, name string, known []string) {
	resp := APIErrorResponse(ErrorCodeCollectionNotFound, "Collection '"+name+"' not found")
	resp.DidYouMean = DidYouMean(name, known)
	send(c, http.StatusNotFound, resp)
}

// SendCandidateNotFoundError sends a standardized candidate not found error
func SendCandidateNotFoundError(c *gin.Context, candidateID, collection string) {
	message := "Candidate '" + candidateID + "' not found"
	if collection != "" {
		message += " in collection '" + collection + "'"
	}
	SendError(c, http.StatusNotFound, ErrorCodeCandidateNotFound, message)
}

// SendCollectionExistsError sends a standardized collection already exists error
func SendCollectionExistsError(c *gin.Context, name string) {
	SendError(c, http.StatusConflict, ErrorCodeCollectionExists,
		"Collection '"+name+"' already exists")
}

// SendSameNameError sends a standardized same name error
func SendSameNameError(c *gin.Context, name string) {
	SendError(c, http.StatusBadRequest, ErrorCodeSameName,
		"New name '"+name+"' is the same as the current name")
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendPersistenceError sends a standardized persistence error
func SendPersistenceError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodePersistenceFailed,
		"Failed to persist "+operation+": "+err.Error())
}

// SendSearchError sends a standardized search error
func SendSearchError(c *gin.Context, collection string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeSearchFailed,
		"Search failed on collection '"+collection+"': "+err.Error())
}

// sendDomainError maps catalog errors to responses. fallback is used for
// anything that is not a known client error.
func (api *API) sendDomainError(c *gin.Context, collection string, err error, fallback func()) {
	var validation *internalErrors.ValidationError
	var notFound *internalErrors.CandidateNotFoundError
	switch {
	case stderrors.Is(err, internalErrors.ErrCollectionNotFound):
		SendCollectionNotFoundError(c, collection, api.manager.ListCollections())
	case stderrors.As(err, &notFound):
		SendCandidateNotFoundError(c, notFound.CandidateID, notFound.Collection)
	case stderrors.Is(err, internalErrors.ErrCollectionAlreadyExists):
		SendCollectionExistsError(c, collection)
	case stderrors.Is(err, internalErrors.ErrSameName):
		SendSameNameError(c, collection)
	case stderrors.As(err, &validation):
		SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed",
			ErrorDetail{Field: validation.Field, Message: validation.Message, Code: "VALIDATION_ERROR"})
	default:
		fallback()
	}
}

// DidYouMean ranks known names against name: subsequence matches first by
// distance, then names within two edits.
func DidYouMean(name string, known []string) []string {
	if name == "" || len(known) == 0 {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(name, known)
	sort.Sort(ranks)

	seen := make(map[string]bool, len(known))
	var out []string
	for _, r := range ranks {
		if r.Target == name || seen[r.Target] {
			continue
		}
		seen[r.Target] = true
		out = append(out, r.Target)
	}

	type near struct {
		name string
		dist int
	}
	var nearby []near
	lower := strings.ToLower(name)
	for _, k := range known {
		if k == name || seen[k] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(lower, strings.ToLower(k)); d <= 2 {
			nearby = append(nearby, near{name: k, dist: d})
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		if nearby[i].dist != nearby[j].dist {
			return nearby[i].dist < nearby[j].dist
		}
		return nearby[i].name < nearby[j].name
	})
	for _, n := range nearby {
		out = append(out, n.name)
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}
