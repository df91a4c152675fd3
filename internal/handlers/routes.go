package handlers

import (
	"time"

	"github.com/alimgiray/ghdash/internal/middleware"
	"github.com/alimgiray/ghdash/internal/session"
	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler of the service
type Handlers struct {
	Health   *HealthHandler
	Profile  *ProfileHandler
	Battle   *BattleHandler
	Explorer *ExplorerHandler
	Readme   *ReadmeHandler
	Network  *NetworkHandler
	Session  *SessionHandler
	NotFound *NotFoundHandler
}

// SetupRoutes installs the middleware chain and every route on router
func SetupRoutes(router *gin.Engine, store *session.Store, sessionTTL time.Duration, h Handlers) {
	router.HandleMethodNotAllowed = true
	router.NoRoute(h.NotFound.NotFound)
	router.NoMethod(h.NotFound.MethodNotAllowed)
	router.Use(middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", h.Health.HealthCheck)

	api := router.Group("/api")
	api.Use(middleware.SessionMiddleware(store, sessionTTL))
	{
		api.GET("/session", h.Session.GetSession)
		api.GET("/profile/:handle", h.Profile.GetProfile)
		api.GET("/battle", h.Battle.Battle)
		api.GET("/users/:handle/network", h.Network.GetNetwork)
	}

	// Routes that operate on the displayed result set
	current := api.Group("/profile")
	current.Use(middleware.RequireProfile())
	{
		current.GET("/repositories", h.Profile.FilterRepositories)
		current.GET("/repositories/export", h.Profile.ExportRepositories)
		current.DELETE("/filters", h.Profile.ClearFilters)
	}

	repos := api.Group("/repos/:owner/:repo")
	{
		repos.POST("/languages", h.Explorer.RevealLanguages)
		repos.GET("/languages", h.Explorer.GetLanguages)
		repos.POST("/tree/expand", h.Explorer.ExpandDirectory)
		repos.POST("/tree/collapse", h.Explorer.CollapseDirectory)
		repos.GET("/readme", h.Readme.GetReadme)
	}
}
