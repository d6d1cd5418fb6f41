// File: venueflow/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"venueflow/config"
	"venueflow/database"
	draftRepo "venueflow/database/repository/draft"
	eventRepo "venueflow/database/repository/event"
	reviewRepo "venueflow/database/repository/review"
	"venueflow/handlers"
	"venueflow/middleware"
	"venueflow/routes"
	"venueflow/services/approval"
	"venueflow/services/escalation"
	ai "venueflow/services/intelligence"
	"venueflow/services/workflow"
	"venueflow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	evRepo := eventRepo.NewMongoEventRepo()
	eventRepo.EnsureIndexes()
	drRepo := draftRepo.NewMongoDraftRepo()
	rvRepo := reviewRepo.NewMongoReviewRepo()

	// services.
	approvalService := &approval.DefaultApprovalService{
		Repo: drRepo,
	}

	ctxStore := ai.NewRedisContextStore(utils.GetNLUContextClient(), 30*time.Minute)
	extractor := ai.NewExtractor(config.AppConfig.GeminiAPIKey, ctxStore)

	escalator := escalation.NewAsynqEscalator()
	escalation.InitReviewWorker(rvRepo)

	workflowService := workflow.NewWorkflowService(
		evRepo,
		extractor,
		workflow.NewKeywordDetector(),
		workflow.DefaultHandlers(approvalService),
		escalator,
		config.AppConfig.MaxDetourDepth,
	)
	workflowService.Cache = utils.GetStateCacheClient()
	workflowService.ContextStore = ctxStore

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Conversation: handlers.NewConversationHandler(workflowService, logger),
		Event:        handlers.NewEventHandler(workflowService, logger),
		Approval:     handlers.NewApprovalHandler(approvalService, logger),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	if err := escalator.Close(); err != nil {
		logger.Sugar().Warnf("main: failed to close escalation client: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
