// Package router maps every route to its handler and guard.
package router

import (
	"github.com/gin-gonic/gin"

	accounthandler "tend_backend/internal/feature/account/transport/handler"
	authhandler "tend_backend/internal/feature/auth/transport/handler"
	experimenthandler "tend_backend/internal/feature/experiments/transport/handler"
	northstarhandler "tend_backend/internal/feature/northstar/transport/handler"
	pageshandler "tend_backend/internal/feature/pages/transport/handler"
	relationshiphandler "tend_backend/internal/feature/relationships/transport/handler"
	structuringhandler "tend_backend/internal/feature/structuring/transport/handler"
	"tend_backend/internal/platform/http/handler"
	"tend_backend/internal/platform/http/middleware"
	"tend_backend/internal/platform/sessionmw"
	"tend_backend/internal/shared/ratelimiter"
)

// Deps holds everything the router wires together.
type Deps struct {
	Sessions      *sessionmw.Middleware
	Limiter       ratelimiter.Limiter
	CORSOrigins   []string
	ReadyChecks   map[string]handler.Check
	Auth          *authhandler.AuthHandler
	Relationships *relationshiphandler.RelationshipHandler
	NorthStar     *northstarhandler.NorthStarHandler
	Experiments   *experimenthandler.ExperimentHandler
	Account       *accounthandler.AccountHandler
	Structuring   *structuringhandler.StructuringHandler
	Pages         *pageshandler.PagesHandler
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	if cors := middleware.CORS(d.CORSOrigins); cors != nil {
		r.Use(cors)
	}

	// Probes
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(d.ReadyChecks))

	// Authentication. Only /token needs a session up front; the rest establish or inspect one.
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.POST("/logout", d.Auth.Logout)
		auth.GET("/me", d.Auth.Me)
		auth.POST("/check-password", d.Auth.CheckPassword)
		auth.POST("/token", d.Auth.IssueToken)
	}
	r.POST("/api/users", d.Auth.CreateUser)

	// Resources. Handlers run the guard themselves because the owner comes from
	// the query, the body or the stored record depending on the route.
	api := r.Group("/api")
	{
		api.GET("/relationships", d.Relationships.List)
		api.POST("/relationships", d.Relationships.Create)
		api.PATCH("/relationships/:id", d.Relationships.Update)
		api.DELETE("/relationships/:id", d.Relationships.Delete)

		api.GET("/northStar", d.NorthStar.Get)
		api.POST("/northStar", d.NorthStar.Save)

		api.GET("/experiments", d.Experiments.List)
		api.POST("/experiments", d.Experiments.Create)
		api.PATCH("/experiments/:id", d.Experiments.Update)
		api.DELETE("/experiments/:id", d.Experiments.Delete)

		api.DELETE("/delete-account", d.Account.Delete)
	}

	// Drafting calls the language model, so it is authenticated first and then rate limited per user.
	llm := r.Group("/", d.Sessions.RequireAPI(), middleware.RateLimit(d.Limiter))
	{
		llm.POST("/mapConnection", d.Structuring.MapConnection)
		llm.POST("/createNorthStar", d.Structuring.CreateNorthStar)
		llm.POST("/designExperiment", d.Structuring.DesignExperiment)
	}

	// Pages
	r.GET("/", d.Pages.Home)
	pages := r.Group("/", d.Sessions.RequirePage())
	{
		pages.GET("/mapConnection", d.Pages.MapConnection)
		pages.GET("/createNorthStar", d.Pages.CreateNorthStar)
		pages.GET("/designExperiment", d.Pages.DesignExperiment)
	}

	return r
}
