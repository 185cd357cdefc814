package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"brightlearn-backend/internal/handlers"
	"brightlearn-backend/internal/middleware"
	"brightlearn-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	lessonHandler *handlers.LessonHandler,
	progressHandler *handlers.ProgressHandler,
	snippetHandler *handlers.SnippetHandler,
	paymentHandler *handlers.PaymentHandler,
	contactHandler *handlers.ContactHandler,
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Get("/verify-email", authHandler.VerifyEmail)
			r.Post("/resend-verification", authHandler.ResendVerification)

			// Logout requires auth
			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/logout", authHandler.Logout)
			})
		})

		// ──── Tutor Chat Routes ────
		r.Route("/chat", func(r chi.Router) {
			r.Get("/personas", chatHandler.Personas) // Public

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/", chatHandler.SendMessage)
			})
		})

		// ──── Lesson Routes (public catalogue) ────
		r.Route("/lessons", func(r chi.Router) {
			r.Get("/", lessonHandler.List)
			r.Get("/{slug}", lessonHandler.GetBySlug)
		})

		// ──── Progress Routes ────
		r.Route("/progress", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", progressHandler.Upsert)
			r.Get("/", progressHandler.List)
			r.Get("/summary", progressHandler.Summary)
		})

		// ──── Playground Snippet Routes ────
		r.Route("/snippets", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", snippetHandler.Create)
			r.Get("/", snippetHandler.List)
			r.Get("/{id}", snippetHandler.Get)
			r.Put("/{id}", snippetHandler.Update)
			r.Delete("/{id}", snippetHandler.Delete)
		})

		// ──── Payment Routes ────
		r.Route("/payments", func(r chi.Router) {
			r.Post("/webhook", paymentHandler.Webhook) // Provider callback, secret-authenticated

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Post("/checkout", paymentHandler.Checkout)
				r.Get("/orders", paymentHandler.ListOrders)
			})
		})

		// ──── Contact Form (public) ────
		r.Post("/contact", contactHandler.Submit)

		// ──── User Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", userHandler.GetMe)
			r.Put("/me", userHandler.UpdateMe)
		})

		// ──── Admin Routes ────
		r.Route("/admin", func(r chi.Router) {
			// Websocket auth happens inside the handler (token query param).
			r.Get("/feed", wsHub.HandleWebSocket)

			r.Group(func(r chi.Router) {
				r.Use(jwtAuth.Middleware)
				r.Use(jwtAuth.RequireAdmin)
				r.Get("/lessons", adminHandler.ListLessons)
				r.Post("/lessons", adminHandler.CreateLesson)
				r.Put("/lessons/{id}", adminHandler.UpdateLesson)
				r.Delete("/lessons/{id}", adminHandler.DeleteLesson)
				r.Put("/lessons/{id}/publish", adminHandler.SetPublished)
				r.Post("/lessons/import", adminHandler.ImportContent)
				r.Post("/lessons/{id}/video", adminHandler.AttachVideo)
				r.Get("/moderation-events", adminHandler.ListModerationEvents)
			})
		})
	})

	return r
}
