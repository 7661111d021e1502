//	@title			Cineshelf API
//	@version		1.0
//	@description	Content catalog backend: movies, series, cast & crew, and direct-to-storage media uploads.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT Bearer token. Format: **Bearer {token}**

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/cineshelf/service/internal/cache"
	"github.com/cineshelf/service/internal/config"
	"github.com/cineshelf/service/internal/content"
	"github.com/cineshelf/service/internal/db"
	"github.com/cineshelf/service/internal/genre"
	"github.com/cineshelf/service/internal/media"
	appMiddleware "github.com/cineshelf/service/internal/middleware"
	"github.com/cineshelf/service/internal/person"
	"github.com/cineshelf/service/internal/storage"
	"github.com/cineshelf/service/internal/upload"

	_ "github.com/cineshelf/service/docs/swagger"
)

func main() {
	cfg := config.Load()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	store, err := storage.NewMinioStorage(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
	if err != nil {
		log.Fatalf("object storage init failed: %v", err)
	}

	listCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	if listCache == nil {
		log.Println("redis not configured, catalog caching disabled")
	}

	// Wire dependencies: repository → service → handler
	uploadSvc := upload.NewService(store, cfg.PresignTTLSeconds)
	uploadHandler := upload.NewHandler(uploadSvc)

	mediaRepo := media.NewRepository(pool)
	mediaHandler := media.NewHandler(mediaRepo)

	contentRepo := content.NewRepository(pool)
	contentSvc := content.NewService(contentRepo, listCache)
	contentHandler := content.NewHandler(contentSvc)

	personRepo := person.NewRepository(pool)
	personHandler := person.NewHandler(personRepo)

	genreRepo := genre.NewRepository(pool)
	genreHandler := genre.NewHandler(genreRepo)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger UI at /swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	requireAuth := appMiddleware.RequireAuth(cfg.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		// Upload tickets and object deletion
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/file", uploadHandler.CreateTicket)
			r.Delete("/file/{key}", uploadHandler.DeleteFile)
		})

		// Media records
		r.Route("/media", func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", mediaHandler.Register)
			r.Get("/", mediaHandler.List)
			r.Delete("/{id}", mediaHandler.Delete)
		})

		// Catalog
		r.Route("/contents", func(r chi.Router) {
			r.Get("/", contentHandler.List)
			r.Get("/{id}", contentHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", contentHandler.Create)
				r.Put("/{id}", contentHandler.Update)
				r.Delete("/{id}", contentHandler.Delete)
				r.Put("/{id}/genres", contentHandler.ReplaceGenres)
			})
		})

		r.Route("/people", func(r chi.Router) {
			r.Get("/", personHandler.List)
			r.Get("/{id}", personHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", personHandler.Create)
				r.Delete("/{id}", personHandler.Delete)
			})
		})

		r.Get("/genres", genreHandler.List)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("server listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
		log.Printf("swagger UI at http://localhost:%s/swagger/", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-quit
	log.Println("shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}

	log.Println("server stopped")
}
