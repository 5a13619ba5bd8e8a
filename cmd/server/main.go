package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/bizmodel-ai/backend/internal/analysis"
	"github.com/bizmodel-ai/backend/internal/auth"
	"github.com/bizmodel-ai/backend/internal/billing"
	"github.com/bizmodel-ai/backend/internal/config"
	"github.com/bizmodel-ai/backend/internal/database"
	"github.com/bizmodel-ai/backend/internal/entitlement"
	"github.com/bizmodel-ai/backend/internal/events"
	"github.com/bizmodel-ai/backend/internal/llm"
	"github.com/bizmodel-ai/backend/internal/logger"
	"github.com/bizmodel-ai/backend/internal/metrics"
	"github.com/bizmodel-ai/backend/internal/middleware"
	"github.com/bizmodel-ai/backend/internal/notify"
	"github.com/bizmodel-ai/backend/internal/report"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}

	// Optional infrastructure
	var cache analysis.Cache = analysis.NopCache{}
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			zl.Fatal("invalid redis url", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			zl.Warn("redis unreachable, analysis cache disabled", zap.Error(err))
		} else {
			cache = analysis.NewRedisCache(rdb, cfg.Redis.TTL)
		}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, zl)
	if err != nil {
		zl.Fatal("failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()

	llmClient, err := llm.New(cfg.LLM, zl)
	if err != nil {
		zl.Fatal("failed to create llm client", zap.Error(err))
	}

	mailer, err := notify.NewMailer(cfg.SMTP, zl)
	if err != nil {
		zl.Fatal("failed to create mailer", zap.Error(err))
	}

	renderer, err := report.NewRenderer(cfg.BaseURL)
	if err != nil {
		zl.Fatal("failed to parse report templates", zap.Error(err))
	}

	// Initialize services
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	entitlementService := entitlement.NewService(entitlement.NewStore(db), billing.SimulatedGateway{}, publisher, zl)
	notifyService := notify.NewService(mailer, notify.NewSessionEmailStore(db), renderer, publisher, zl)

	// Initialize handlers
	authHandler := auth.NewHandler(auth.NewStore(db), tokens, zl)
	analysisHandler := analysis.NewHandler(
		analysis.NewFitAnalyzer(llmClient, cache, zl),
		analysis.NewSkillsAnalyzer(llmClient, zl),
		analysis.NewInsightsWriter(llmClient, zl),
		analysis.NewPersonalityAnalyzer(llmClient, zl),
		zl,
	)
	entitlementHandler := entitlement.NewHandler(entitlementService, zl)
	notifyHandler := notify.NewHandler(notifyService, zl)

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.Recover(zl), middleware.Logging(zl))
	api := r.PathPrefix("/api").Subrouter()

	// Fit analysis
	api.HandleFunc("/ai-business-fit-analysis", analysisHandler.BusinessFitAnalysis).Methods("POST")
	api.HandleFunc("/business-paths", analysisHandler.BusinessPaths).Methods("POST")
	api.HandleFunc("/ai-personality-analysis", analysisHandler.PersonalityAnalysis).Methods("POST")
	api.HandleFunc("/analyze-skills", analysisHandler.AnalyzeSkills).Methods("POST")
	api.HandleFunc("/generate-personalized-insights", analysisHandler.PersonalizedInsights).Methods("POST")
	api.HandleFunc("/generate-business-fit-descriptions", analysisHandler.BusinessFitDescriptions).Methods("POST")
	api.HandleFunc("/generate-income-projections", analysisHandler.IncomeProjections).Methods("POST")
	api.HandleFunc("/business-resources/{businessModel}", analysisHandler.BusinessResources).Methods("GET")

	// Quiz entitlement
	api.HandleFunc("/quiz-retake-status/{userId}", entitlementHandler.RetakeStatus).Methods("GET")
	api.HandleFunc("/quiz-attempt", entitlementHandler.RecordAttempt).Methods("POST")
	api.HandleFunc("/quiz-attempts/{userId}", entitlementHandler.Attempts).Methods("GET")
	api.HandleFunc("/create-access-pass-payment", entitlementHandler.AccessPassPayment).Methods("POST")
	api.HandleFunc("/create-retake-bundle-payment", entitlementHandler.RetakeBundlePayment).Methods("POST")
	api.HandleFunc("/payment-history/{userId}", entitlementHandler.PaymentHistory).Methods("GET")

	// Reports and email
	api.HandleFunc("/generate-pdf", notifyHandler.GeneratePDF).Methods("POST")
	api.HandleFunc("/send-quiz-results", notifyHandler.SendQuizResults).Methods("POST")
	api.HandleFunc("/send-welcome-email", notifyHandler.SendWelcome).Methods("POST")
	api.HandleFunc("/send-full-report", notifyHandler.SendFullReport).Methods("POST")
	api.HandleFunc("/email-results", notifyHandler.EmailResults).Methods("POST")
	api.HandleFunc("/get-stored-email/{sessionId}", notifyHandler.StoredEmail).Methods("GET")

	// Accounts
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokens, zl))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      c.Handler(r),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
