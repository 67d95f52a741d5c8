package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-suggest/model"
)

// decodeCandidates accepts a single candidate object or an array of them.
func decodeCandidates(body []byte) ([]model.Candidate, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("request body is empty")
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		candidates := make([]model.Candidate, len(items))
		for i, item := range items {
			if err := json.Unmarshal(item, &candidates[i]); err != nil {
				return nil, fmt.Errorf("candidate at index %d: %w", i, err)
			}
		}
		return candidates, nil
	}

	var single model.Candidate
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return nil, err
	}
	return []model.Candidate{single}, nil
}

// PutCandidatesHandler upserts candidates into a collection.
// Request Body: a candidate object or an array of candidates.
func (api *API) PutCandidatesHandler(c *gin.Context) {
	col, name, ok := api.collection(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		SendError(c, http.StatusRequestEntityTooLarge, ErrorCodeInvalidRequest, "Failed to read request body: "+err.Error())
		return
	}
	candidates, err := decodeCandidates(body)
	if err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if result := ValidateCandidates(candidates); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := col.PutCandidates(candidates); err != nil {
		api.sendDomainError(c, name, err, func() { SendPersistenceError(c, "candidates", err) })
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d candidates upserted into collection '%s'", len(candidates), name),
		"count":   len(candidates),
	})
}

// GetCandidatesHandler lists candidates in insertion order with pagination.
func (api *API) GetCandidatesHandler(c *gin.Context) {
	col, _, ok := api.collection(c)
	if !ok {
		return
	}

	var params struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if result := ValidateQueryBinding(c, &params); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	page, pageSize, _ := ValidatePagination(params.Page, params.PageSize)

	all := col.Candidates()
	start := (page - 1) * pageSize
	if start > len(all) {
		start = len(all)
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": all[start:end],
		"total":      len(all),
		"page":       page,
		"page_size":  pageSize,
	})
}

// GetCandidateHandler returns one candidate.
func (api *API) GetCandidateHandler(c *gin.Context) {
	col, name, ok := api.collection(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if result := ValidateCandidateID(id); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	candidate, err := col.GetCandidate(id)
	if err != nil {
		api.sendDomainError(c, name, err, func() { SendInternalError(c, "get candidate", err) })
		return
	}
	c.JSON(http.StatusOK, candidate)
}

// DeleteCandidateHandler removes one candidate.
func (api *API) DeleteCandidateHandler(c *gin.Context) {
	col, name, ok := api.collection(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if result := ValidateCandidateID(id); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := col.DeleteCandidate(id); err != nil {
		api.sendDomainError(c, name, err, func() { SendPersistenceError(c, "candidate deletion", err) })
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Candidate '" + id + "' deleted from collection '" + name + "'"})
}
