package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/casefolio/backend/internal/casestudy/template"
	"github.com/casefolio/backend/internal/data/db"
	csrepo "github.com/casefolio/backend/internal/data/repos/casestudy"
	mktrepo "github.com/casefolio/backend/internal/data/repos/marketing"
	userrepo "github.com/casefolio/backend/internal/data/repos/user"
	"github.com/casefolio/backend/internal/http/handlers"
	"github.com/casefolio/backend/internal/http/middleware"
	"github.com/casefolio/backend/internal/marketing"
	"github.com/casefolio/backend/internal/observability"
	"github.com/casefolio/backend/internal/platform/envutil"
	"github.com/casefolio/backend/internal/platform/logger"
	"github.com/casefolio/backend/internal/platform/openai"
	"github.com/casefolio/backend/internal/platform/rediscache"
	"github.com/casefolio/backend/internal/server"
	"github.com/casefolio/backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownTracing := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "casefolio",
		Environment: envutil.Get("APP_ENV", "development"),
		Version:     envutil.Get("APP_VERSION", "dev"),
	})
	if shutdownTracing != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(ctx)
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := envutil.Get("JWT_SECRET_KEY", "defaultsecret")
	accessTokenTTL := envutil.Int("ACCESS_TOKEN_TTL", 86400)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	if envutil.Bool("SEED_SAMPLE_DATA", false) {
		if err = postgresService.SeedShowcase(context.Background()); err != nil {
			log.Error("Showcase seeding failed", "error", err)
			os.Exit(1)
		}
	}
	thePG := postgresService.DB()

	// Redis (optional)
	cache, err := rediscache.New(log)
	if err != nil {
		log.Warn("Redis init failed, continuing without cache", "error", err)
		cache = nil
	}
	if cache != nil {
		defer cache.Close()
	}

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := userrepo.NewUserRepo(thePG, log)
	caseStudyRepo := csrepo.NewCaseStudyRepo(thePG, log)
	marketingRepo := mktrepo.NewMarketingRepo(thePG, log)

	// Templates
	registry := template.Default()

	// Services
	log.Info("Setting up services from main...")
	gateway := openai.NewClient(log)
	synthesizer := marketing.NewSynthesizer(gateway, log)
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	caseStudyService := services.NewCaseStudyService(thePG, log, caseStudyRepo, userRepo, registry, gateway)
	marketingService := services.NewMarketingService(thePG, log, caseStudyRepo, marketingRepo, registry, synthesizer, cache)

	// Handlers
	log.Info("Setting up handlers from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)
	authHandler := handlers.NewAuthHandler(authService)
	caseStudyHandler := handlers.NewCaseStudyHandler(caseStudyService)
	publicHandler := handlers.NewPublicHandler(caseStudyRepo)
	marketingHandler := handlers.NewMarketingHandler(marketingService)
	templateHandler := handlers.NewTemplateHandler(registry)

	// Router
	srv := server.NewServer(server.RouterConfig{
		Log:              log,
		AuthMiddleware:   authMiddleware,
		AuthHandler:      authHandler,
		CaseStudyHandler: caseStudyHandler,
		PublicHandler:    publicHandler,
		MarketingHandler: marketingHandler,
		TemplateHandler:  templateHandler,
	})

	addr := ":" + envutil.Get("PORT", "8080")
	log.Info("Starting server", "addr", addr)
	if err := srv.Run(addr); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
