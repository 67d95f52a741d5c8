package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AddRecentRequest is the body of POST /recent/:namespace.
type AddRecentRequest struct {
	ID string `json:"id" binding:"required"`
}

func (api *API) recentNamespace(c *gin.Context) (string, bool) {
	namespace := c.Param("namespace")
	if strings.TrimSpace(namespace) == "" {
		result := &ValidationResult{Valid: true}
		result.AddError("namespace", "Namespace is required")
		SendValidationError(c, result)
		return "", false
	}
	return namespace, true
}

// GetRecentHandler lists the recent selections of a namespace, most recent first.
func (api *API) GetRecentHandler(c *gin.Context) {
	namespace, ok := api.recentNamespace(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"namespace": namespace, "recent": api.recent.Recent(namespace).GetRecent()})
}

// AddRecentHandler records a selection in a namespace.
func (api *API) AddRecentHandler(c *gin.Context) {
	namespace, ok := api.recentNamespace(c)
	if !ok {
		return
	}

	var req AddRecentRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	store := api.recent.Recent(namespace)
	store.AddRecent(req.ID)
	c.JSON(http.StatusOK, gin.H{"namespace": namespace, "recent": store.GetRecent()})
}

// ClearRecentHandler forgets every selection of a namespace.
func (api *API) ClearRecentHandler(c *gin.Context) {
	namespace, ok := api.recentNamespace(c)
	if !ok {
		return
	}
	api.recent.Recent(namespace).ClearRecent()
	c.JSON(http.StatusOK, gin.H{"namespace": namespace, "recent": []string{}})
}
