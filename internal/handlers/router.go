package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gamenight/backend/internal/auth"
	"github.com/gamenight/backend/internal/catalog"
	"github.com/gamenight/backend/internal/middleware"
	"github.com/gamenight/backend/internal/selection"
	"github.com/gamenight/backend/internal/service"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Credentials *auth.CredentialService
	Backlog     *service.BacklogService
	Accounts    *service.AccountService
	Engine      *selection.Engine
	Catalog     *catalog.Client
}

// NewRouter builds the gin engine with all middleware and routes attached.
// Read-only routes run with optional auth so anonymous visitors see the
// list; every mutation sits behind RequireAuth.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(cors.Default())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) { ok(c, "ok", nil) })

	authH := NewAuthHandler(deps.Credentials)
	backlogH := NewBacklogHandler(deps.Backlog, deps.Engine)
	adminH := NewAdminHandler(deps.Accounts)
	searchH := NewSearchHandler(deps.Catalog)

	api := router.Group("/api")

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/password", middleware.RequireAuth(deps.Credentials), authH.ChangePassword)
	api.GET("/auth/me", middleware.RequireAuth(deps.Credentials), authH.Me)

	api.GET("/games", middleware.OptionalAuth(deps.Credentials), backlogH.List)

	protected := api.Group("", middleware.RequireAuth(deps.Credentials))
	protected.POST("/games", backlogH.Add)
	protected.PUT("/games/:id", backlogH.Update)
	protected.DELETE("/games/:id", backlogH.Remove)
	protected.POST("/games/:id/vote", backlogH.Vote)
	protected.POST("/games/pick", backlogH.Pick)
	protected.GET("/search", searchH.Search)

	protected.GET("/users", adminH.List)
	protected.DELETE("/users/:id", adminH.Delete)
	protected.POST("/users/:id/role", adminH.ToggleRole)
	protected.POST("/users/:id/password", adminH.ResetPassword)

	return router
}
