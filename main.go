package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/toninews/logbook-back/apperrors"
	"github.com/toninews/logbook-back/config"
	"github.com/toninews/logbook-back/controllers"
	"github.com/toninews/logbook-back/database"
	"github.com/toninews/logbook-back/jobs"
	appmiddleware "github.com/toninews/logbook-back/middleware"
	"github.com/toninews/logbook-back/repositories"
	"github.com/toninews/logbook-back/response"
	"github.com/toninews/logbook-back/services"
)

func main() {
	// Load environment variables from .env file, when present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load the env vars: %v", err)
	}

	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize services
	srvs, err := services.NewServices(repos, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, cfg)

	// Background tasks share this context; cancelling it stops them
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := appmiddleware.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)
	limiter.StartJanitor(ctx)

	sweeper := jobs.NewCleanupJob(repos.Log, cfg.CleanupInterval, cfg.RetentionDays)
	sweeper.Start(ctx)

	r := setupRouter(ctrl, srvs, limiter, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		fmt.Printf("Server running at http://localhost:%s\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Gracefully shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, srvs *services.Services, limiter *appmiddleware.RateLimiter, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontOrigin},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Write-Token"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "logbook-back"}`)
	})

	r.Route("/logs", func(r chi.Router) {
		r.With(appmiddleware.ValidateGetList).
			Get("/getList", ctrl.Logs.GetList)

		r.With(
			appmiddleware.RateLimit(limiter, cfg.IsDevelopment()),
			appmiddleware.RequireWriteToken(cfg.WriteToken),
			appmiddleware.ValidateCreateLog,
		).Post("/insertTask", ctrl.Logs.Create)

		// The id shape check runs before the token guard so a malformed id
		// never reaches authorization or persistence.
		r.With(
			appmiddleware.ValidateDeleteID,
			appmiddleware.RequireWriteToken(cfg.WriteToken),
		).Delete("/{id}", ctrl.Logs.Delete)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", ctrl.Auth.Login)
		r.Post("/logout", ctrl.Auth.Logout)

		r.With(appmiddleware.VerifyJWT(srvs.Auth)).
			Get("/me", ctrl.Auth.Me)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Fail(w, apperrors.New(http.StatusNotFound, apperrors.CodeRouteNotFound, "Route not found."))
	})

	return r
}
