package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/casefolio/backend/internal/http/handlers"
	"github.com/casefolio/backend/internal/http/middleware"
	"github.com/casefolio/backend/internal/platform/envutil"
	"github.com/casefolio/backend/internal/platform/logger"
)

type RouterConfig struct {
	Log              *logger.Logger
	AuthMiddleware   *middleware.AuthMiddleware
	AuthHandler      *handlers.AuthHandler
	CaseStudyHandler *handlers.CaseStudyHandler
	PublicHandler    *handlers.PublicHandler
	MarketingHandler *handlers.MarketingHandler
	TemplateHandler  *handlers.TemplateHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := strings.Split(envutil.Get("CORS_ALLOW_ORIGINS", "http://localhost:3000"), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware("casefolio"))
	router.Use(middleware.RequestLogger(cfg.Log))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)

		api.GET("/templates", cfg.TemplateHandler.List)
		api.GET("/templates/:id", cfg.TemplateHandler.Get)

		public := api.Group("/public")
		{
			public.GET("/case-studies", cfg.PublicHandler.ListPublished)
			public.GET("/case-studies/:id", cfg.PublicHandler.GetPublished)
			public.GET("/marketing/:designer", cfg.MarketingHandler.GetForDesigner)
		}

		// Case-study CRUD accepts anonymous callers; a valid bearer token
		// scopes rows to that user, otherwise the shared anon owner is used.
		studies := api.Group("/case-studies")
		studies.Use(cfg.AuthMiddleware.OptionalAuth())
		{
			studies.GET("", cfg.CaseStudyHandler.List)
			studies.POST("", cfg.CaseStudyHandler.Create)
			studies.GET("/:id", cfg.CaseStudyHandler.Get)
			studies.PATCH("/:id", cfg.CaseStudyHandler.Update)
			studies.DELETE("/:id", cfg.CaseStudyHandler.Delete)
			studies.POST("/:id/ai-draft", cfg.CaseStudyHandler.GenerateDraft)
		}
	}

	return router
}

type Server struct {
	Engine *gin.Engine
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg)}
}

func (s *Server) Run(address string) error {
	return s.Engine.Run(address)
}
