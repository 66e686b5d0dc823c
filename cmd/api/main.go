package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/orbitmeetai/orbitmeet/pkg/validator"

	"github.com/orbitmeetai/orbitmeet/internal/adapter/handler"
	"github.com/orbitmeetai/orbitmeet/internal/adapter/repository"
	"github.com/orbitmeetai/orbitmeet/internal/infrastructure/database"
	"github.com/orbitmeetai/orbitmeet/internal/infrastructure/storage"
	"github.com/orbitmeetai/orbitmeet/internal/usecase/agent"
	"github.com/orbitmeetai/orbitmeet/internal/usecase/notify"
	"github.com/orbitmeetai/orbitmeet/internal/usecase/pipeline"
	"github.com/orbitmeetai/orbitmeet/internal/usecase/scheduler"
	"github.com/orbitmeetai/orbitmeet/internal/usecase/transcript"
	pkgai "github.com/orbitmeetai/orbitmeet/pkg/ai"
	"github.com/orbitmeetai/orbitmeet/pkg/config"
)

// @title           OrbitMeet API
// @version         1.0
// @description     API for meeting transcript ingestion, AI-backed analysis and project reporting

// @host      localhost:8080
// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize document store
	log.Println("📦 Connecting to document store...")
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancelStartup()

	db, err := database.NewMongoDB(startupCtx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to document store: %v", err)
	}
	defer database.CloseDB(db)

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	transcriptRepo := repository.NewTranscriptRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	projectRepo := repository.NewProjectSummaryRepository(db)
	sentLogRepo := repository.NewSentLogRepository(db)

	// Initialize raw file archive (optional)
	var archiver handler.Archiver
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		store, err := storage.NewArchiveStore(startupCtx, &cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		archiver = store
	}

	// Initialize AI agents
	log.Println("🤖 Initializing AI agents...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	summaryAgent := agent.NewSummaryAgent(groqClient)
	participantAgent := agent.NewParticipantAgent(groqClient)
	projectAgent := agent.NewProjectAgent(groqClient)
	chatAgent := agent.NewChatAgent(groqClient)

	// Initialize notifier
	log.Println("📧 Initializing notifier...")
	var sender notify.MailSender
	if cfg.SMTP.Enabled {
		sender = notify.NewMailSender(&cfg.SMTP)
	} else {
		log.Println("⚠️  SMTP disabled, notifications will be dropped")
		sender = notify.NewNoopSender(logger)
	}
	notifier := notify.NewNotifier(sender, sentLogRepo, cfg.Roster.Path, logger)

	// Initialize pipeline and scheduler
	log.Println("🔁 Initializing pipeline...")
	orchestrator := pipeline.NewOrchestrator(
		summaryAgent,
		participantAgent,
		projectAgent,
		analysisRepo,
		projectRepo,
		notifier,
		logger,
	)

	sched := scheduler.NewScheduler(transcriptRepo, orchestrator, cfg.Scheduler.Spec, logger)
	if cfg.Scheduler.Enabled {
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	} else {
		log.Println("⚠️  Scheduler disabled, catch-up runs only via POST /v1/scheduler/run")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	meetingHandler := handler.NewMeeting(
		transcript.NewNormalizer(),
		transcriptRepo,
		analysisRepo,
		projectRepo,
		chatAgent,
		sched,
		archiver,
		logger,
	)

	router := handler.NewRouter(cfg, meetingHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.ServerAddr()
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
