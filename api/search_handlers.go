package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-suggest/services"
)

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query        string   `json:"query"`
	Limit        *int     `json:"limit,omitempty"`     // Optional: override collection default_limit
	MinScore     *int     `json:"min_score,omitempty"` // Optional: override collection min_score
	SearchFields []string `json:"search_fields,omitempty"`
}

// SuggestRequest defines the structure for suggestion queries.
type SuggestRequest struct {
	SearchRequest
	IncludeRecent *bool    `json:"include_recent,omitempty"`
	Namespace     string   `json:"namespace,omitempty"`
	RecentIDs     []string `json:"recent_ids,omitempty"`
}

// SelectRequest records a selection in a collection namespace.
type SelectRequest struct {
	Namespace string `json:"namespace"`
	ID        string `json:"id" binding:"required"`
}

// SearchHandler ranks a collection with fuzzy search.
// Request Body: SearchRequest
func (api *API) SearchHandler(c *gin.Context) {
	col, name, ok := api.collection(c)
	if !ok {
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid request body: "+err.Error())
		return
	}

	results, err := col.Search(services.SearchQuery{
		Query:        req.Query,
		Limit:        req.Limit,
		MinScore:     req.MinScore,
		SearchFields: req.SearchFields,
	})
	if err != nil {
		api.sendDomainError(c, name, err, func() { SendSearchError(c, name, err) })
		return
	}
	c.JSON(http.StatusOK, results)
}

// SuggestHandler returns suggestions for an input box, including recent
// selections of the namespace when the query is empty.
// Request Body: SuggestRequest
func (api *API) SuggestHandler(c *gin.Context) {
	col, name, ok := api.collection(c)
	if !ok {
		return
	}

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid request body: "+err.Error())
		return
	}

	results, err := col.Suggest(services.SuggestQuery{
		Query:         req.Query,
		Limit:         req.Limit,
		MinScore:      req.MinScore,
		IncludeRecent: req.IncludeRecent,
		SearchFields:  req.SearchFields,
		Namespace:     req.Namespace,
		RecentIDs:     req.RecentIDs,
	})
	if err != nil {
		api.sendDomainError(c, name, err, func() { SendSearchError(c, name, err) })
		return
	}
	c.JSON(http.StatusOK, results)
}

// SelectHandler records that a candidate was picked in a namespace of the collection.
// Request Body: SelectRequest
func (api *API) SelectHandler(c *gin.Context) {
	col, name, ok := api.collection(c)
	if !ok {
		return
	}

	var req SelectRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := col.Select(req.Namespace, req.ID); err != nil {
		api.sendDomainError(c, name, err, func() { SendInternalError(c, "select candidate", err) })
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Selection recorded", "id": req.ID})
}

// LettersHandler lists the first Hebrew letters present in the collection.
func (api *API) LettersHandler(c *gin.Context) {
	col, _, ok := api.collection(c)
	if !ok {
		return
	}
	letters := col.Letters()
	c.JSON(http.StatusOK, gin.H{"letters": letters, "count": len(letters)})
}

// GroupsHandler buckets candidates by first Hebrew letter, optionally within
// the inclusive range from..to.
func (api *API) GroupsHandler(c *gin.Context) {
	col, _, ok := api.collection(c)
	if !ok {
		return
	}

	var params struct {
		From string `form:"from"`
		To   string `form:"to"`
	}
	if result := ValidateQueryBinding(c, &params); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	groups := col.Groups(params.From, params.To)
	c.JSON(http.StatusOK, gin.H{"groups": groups, "count": len(groups)})
}
