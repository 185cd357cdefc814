package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brightlearn-backend/internal/config"
	"brightlearn-backend/internal/database"
	"brightlearn-backend/internal/handlers"
	"brightlearn-backend/internal/middleware"
	"brightlearn-backend/internal/ratelimit"
	"brightlearn-backend/internal/repository"
	"brightlearn-backend/internal/router"
	"brightlearn-backend/internal/services"
	"brightlearn-backend/internal/websocket"
	"brightlearn-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting BrightLearn Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	lessonRepo := repository.NewLessonRepo(pool)
	progressRepo := repository.NewProgressRepo(pool)
	snippetRepo := repository.NewSnippetRepo(pool)
	orderRepo := repository.NewOrderRepo(pool)
	moderationRepo := repository.NewModerationRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SupportEmail, cfg.FrontendURL)
	completionService := services.NewCompletionService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if !completionService.Configured() {
		log.Println("⚠ OPENAI_API_KEY not set — tutor chat will answer 500 until configured")
	}
	videoService := services.NewVideoService()
	fileExtractService := services.NewFileExtractService()
	authService := services.NewAuthService(userRepo, redisClients.Main, jwtAuth)
	paymentService := services.NewPaymentService(orderRepo, userRepo, redisClients.Main)
	moderationLogger := services.NewModerationLogger(redisClients.Main)

	// Rate limiters are Redis-backed so the windows hold across restarts
	// and replicas.
	chatLimiter := ratelimit.NewRedis(redisClients.Main, "ratelimit:chat", 10, time.Minute)
	contactLimiter := ratelimit.NewRedis(redisClients.Main, "ratelimit:contact", 3, time.Hour)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatLimiter, completionService, moderationLogger)
	lessonHandler := handlers.NewLessonHandler(lessonRepo)
	progressHandler := handlers.NewProgressHandler(progressRepo)
	snippetHandler := handlers.NewSnippetHandler(snippetRepo)
	paymentHandler := handlers.NewPaymentHandler(paymentService, cfg.PaymentWebhookSecret)
	contactHandler := handlers.NewContactHandler(contactLimiter, redisClients.Main)
	userHandler := handlers.NewUserHandler(userRepo)
	adminHandler := handlers.NewAdminHandler(lessonRepo, moderationRepo, videoService, fileExtractService)

	// ──── Step 5: Start Job Worker Pool ────
	workerPool := worker.NewPool(redisClients.Main, emailService, moderationRepo, cfg.WorkerCount)
	workerPool.Start()
	log.Printf("✓ Worker pool started (%d goroutines)", cfg.WorkerCount)

	reminderScheduler := services.NewReminderScheduler(userRepo, redisClients.Main)
	reminderScheduler.Start()
	log.Println("✓ Practice reminder scheduler started")

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		chatHandler,
		lessonHandler,
		progressHandler,
		snippetHandler,
		paymentHandler,
		contactHandler,
		userHandler,
		adminHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()
		reminderScheduler.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ BrightLearn Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/admin/feed", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
