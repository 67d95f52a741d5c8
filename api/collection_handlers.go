package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-suggest/config"
)

// CreateCollectionHandler handles the request to create a new collection.
// Request Body: config.CollectionSettings; omitted fields take their defaults.
func (api *API) CreateCollectionHandler(c *gin.Context) {
	settings := config.NewCollectionSettings("")
	settings.SearchFields = nil

	if result := ValidateJSONBinding(c, &settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if result := ValidateCollectionSettings(&settings); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.manager.CreateCollection(settings); err != nil {
		api.sendDomainError(c, settings.Name, err, func() { SendPersistenceError(c, "collection", err) })
		return
	}
	api.notifySettings(settings.Name)

	c.JSON(http.StatusCreated, gin.H{"message": "Collection '" + settings.Name + "' created successfully"})
}

// ListCollectionsHandler lists all collections.
func (api *API) ListCollectionsHandler(c *gin.Context) {
	names := api.manager.ListCollections()
	c.JSON(http.StatusOK, gin.H{"collections": names, "count": len(names)})
}

// GetCollectionHandler returns the settings and size of a collection.
func (api *API) GetCollectionHandler(c *gin.Context) {
	col, _, ok := api.collection(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"settings":        col.Settings(),
		"candidate_count": len(col.Candidates()),
	})
}

// DeleteCollectionHandler handles deleting a collection.
func (api *API) DeleteCollectionHandler(c *gin.Context) {
	name := c.Param("name")
	if err := api.manager.DeleteCollection(name); err != nil {
		api.sendDomainError(c, name, err, func() { SendPersistenceError(c, "collection deletion", err) })
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection '" + name + "' deleted successfully"})
}

// RenameCollectionRequest defines the structure for renaming a collection
type RenameCollectionRequest struct {
	NewName string `json:"new_name" binding:"required"`
}

// RenameCollectionHandler handles requests to rename a collection.
func (api *API) RenameCollectionHandler(c *gin.Context) {
	oldName := c.Param("name")

	var req RenameCollectionRequest
	if result := ValidateJSONBinding(c, &req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateRenameRequest(oldName, req.NewName); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.manager.RenameCollection(oldName, req.NewName); err != nil {
		target := oldName
		if _, getErr := api.manager.GetCollection(oldName); getErr == nil {
			target = req.NewName
		}
		api.sendDomainError(c, target, err, func() { SendPersistenceError(c, "collection rename", err) })
		return
	}
	api.notifySettings(req.NewName)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Collection renamed successfully",
		"old_name": oldName,
		"new_name": req.NewName,
	})
}

// UpdateCollectionSettingsHandler applies a partial settings update. Keys
// absent from the body keep their current values.
func (api *API) UpdateCollectionSettingsHandler(c *gin.Context) {
	name := c.Param("name")

	settings, err := api.manager.GetCollectionSettings(name)
	if err != nil {
		api.sendDomainError(c, name, err, func() { SendInternalError(c, "get collection settings", err) })
		return
	}

	var raw json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		SendInvalidJSONError(c, err)
		return
	}
	if settings.Name != name {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest,
			"Collection name cannot be changed via settings; use the rename endpoint")
		return
	}

	if err := api.manager.UpdateCollectionSettings(name, settings); err != nil {
		api.sendDomainError(c, name, err, func() { SendPersistenceError(c, "collection settings", err) })
		return
	}
	api.notifySettings(name)

	updated, err := api.manager.GetCollectionSettings(name)
	if err != nil {
		SendInternalError(c, "get collection settings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Settings for collection '" + name + "' updated successfully",
		"settings": updated,
	})
}
