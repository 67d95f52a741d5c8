package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/services"
)

// Options tunes the routes installed by SetupRoutes.
type Options struct {
	RequestsPerSecond float64 // per client IP on _search and _suggest; <= 0 disables limiting
	Burst             int
	MaxRequestBytes   int64

	// SettingsChanged is called after a collection is created or its settings updated.
	SettingsChanged func(settings config.CollectionSettings)
}

// API holds dependencies for API handlers.
type API struct {
	manager         services.CollectionManager
	recent          services.RecentStores
	settingsChanged func(settings config.CollectionSettings)
}

// NewAPI creates a new API handler structure.
func NewAPI(manager services.CollectionManager, recent services.RecentStores) *API {
	return &API{manager: manager, recent: recent}
}

// SetupRoutes defines all the API routes for the suggestion service.
func SetupRoutes(router *gin.Engine, manager services.CollectionManager, recent services.RecentStores, opts Options) {
	apiHandler := NewAPI(manager, recent)
	apiHandler.settingsChanged = opts.SettingsChanged
	limiter := NewIPRateLimiter(opts.RequestsPerSecond, opts.Burst)

	router.Use(RequestIDMiddleware(), CORSMiddleware(), RequestSizeLimitMiddleware(opts.MaxRequestBytes))

	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	collectionRoutes := router.Group("/collections")
	{
		collectionRoutes.POST("", apiHandler.CreateCollectionHandler)                         // Create a new collection
		collectionRoutes.GET("", apiHandler.ListCollectionsHandler)                           // List all collections
		collectionRoutes.GET("/:name", apiHandler.GetCollectionHandler)                       // Get collection settings
		collectionRoutes.DELETE("/:name", apiHandler.DeleteCollectionHandler)                 // Delete a collection
		collectionRoutes.PATCH("/:name/settings", apiHandler.UpdateCollectionSettingsHandler) // Update collection settings
		collectionRoutes.POST("/:name/rename", apiHandler.RenameCollectionHandler)            // Rename a collection

		candidateRoutes := collectionRoutes.Group("/:name/candidates")
		{
			candidateRoutes.PUT("", apiHandler.PutCandidatesHandler)           // Upsert candidates
			candidateRoutes.GET("", apiHandler.GetCandidatesHandler)           // List candidates with pagination
			candidateRoutes.GET("/:id", apiHandler.GetCandidateHandler)       // Get a candidate
			candidateRoutes.DELETE("/:id", apiHandler.DeleteCandidateHandler) // Delete a candidate
		}

		collectionRoutes.POST("/:name/_search", limiter.Middleware(), apiHandler.SearchHandler)
		collectionRoutes.POST("/:name/_suggest", limiter.Middleware(), apiHandler.SuggestHandler)
		collectionRoutes.POST("/:name/recent", apiHandler.SelectHandler) // Record a selection in a collection namespace

		collectionRoutes.GET("/:name/letters", apiHandler.LettersHandler)
		collectionRoutes.GET("/:name/groups", apiHandler.GroupsHandler)
	}

	recentRoutes := router.Group("/recent")
	{
		recentRoutes.GET("/:namespace", apiHandler.GetRecentHandler)
		recentRoutes.POST("/:namespace", apiHandler.AddRecentHandler)
		recentRoutes.DELETE("/:namespace", apiHandler.ClearRecentHandler)
	}
}

// HealthCheckHandler reports service liveness and the number of collections.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"collections": len(api.manager.ListCollections()),
	})
}

// collection resolves the :name parameter, writing an error response on failure.
func (api *API) collection(c *gin.Context) (services.CollectionAccessor, string, bool) {
	name := c.Param("name")
	if result := ValidateCollectionName(name); result.HasErrors() {
		SendValidationError(c, result)
		return nil, name, false
	}
	col, err := api.manager.GetCollection(name)
	if err != nil {
		api.sendDomainError(c, name, err, func() { SendInternalError(c, "get collection", err) })
		return nil, name, false
	}
	return col, name, true
}

func (api *API) notifySettings(name string) {
	if api.settingsChanged == nil {
		return
	}
	if settings, err := api.manager.GetCollectionSettings(name); err == nil {
		api.settingsChanged(settings)
	}
}
