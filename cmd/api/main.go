package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/config"
	"github.com/playgrid/playgrid-api/internal/domain/auth"
	"github.com/playgrid/playgrid-api/internal/domain/booking"
	"github.com/playgrid/playgrid-api/internal/domain/court"
	"github.com/playgrid/playgrid-api/internal/domain/facility"
	"github.com/playgrid/playgrid-api/internal/domain/notify"
	"github.com/playgrid/playgrid-api/internal/domain/payment"
	"github.com/playgrid/playgrid-api/internal/domain/product"
	"github.com/playgrid/playgrid-api/internal/domain/rental"
	"github.com/playgrid/playgrid-api/internal/domain/review"
	"github.com/playgrid/playgrid-api/internal/domain/setup"
	"github.com/playgrid/playgrid-api/internal/domain/upload"
	"github.com/playgrid/playgrid-api/internal/domain/user"
	"github.com/playgrid/playgrid-api/internal/middleware"
	"github.com/playgrid/playgrid-api/internal/pkg/database"
	"github.com/playgrid/playgrid-api/internal/pkg/jwt"
	pkgresponse "github.com/playgrid/playgrid-api/internal/pkg/response"
	"github.com/playgrid/playgrid-api/internal/pkg/storage"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting PlayGrid API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	var store storage.Storage
	if cfg.StorageAccessKeyID != "" {
		s3Store, err := storage.NewS3Storage(storage.S3Config{
			AccountID:       cfg.StorageAccountID,
			AccessKeyID:     cfg.StorageAccessKeyID,
			AccessKeySecret: cfg.StorageAccessKeySecret,
			Bucket:          cfg.StorageBucket,
			PublicURL:       cfg.StoragePublicURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create storage client")
		}
		store = s3Store
	} else {
		log.Warn().Msg("Storage credentials missing, file uploads disabled")
	}

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	facilityRepo := facility.NewRepository(db)
	courtRepo := court.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	productRepo := product.NewRepository(db)
	rentalRepo := rental.NewRepository(db)
	reviewRepo := review.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	uploadRepo := upload.NewRepository(db)

	// ---------- Notifications ----------
	hub := notify.NewHub()
	publisher := notify.NewPublisher(hub, redis)

	listenCtx, stopListening := context.WithCancel(context.Background())
	defer stopListening()
	go publisher.Listen(listenCtx)

	// ---------- Services ----------
	tokenStore := auth.NewRedisTokenStore(redis)
	authService := auth.NewService(userRepo, jwtService, tokenStore)
	facilityService := facility.NewService(facilityRepo, userRepo)
	courtService := court.NewService(courtRepo, facilityRepo)
	bookingService := booking.NewService(bookingRepo, courtRepo, facilityRepo, publisher, cfg.BookingCancelCutoff)
	productService := product.NewService(productRepo, facilityRepo)
	rentalService := rental.NewService(rentalRepo, productRepo, facilityRepo, bookingRepo)
	reviewService := review.NewService(reviewRepo, facilityRepo, bookingRepo)
	paymentService := payment.NewService(paymentRepo, bookingRepo, rentalRepo, cfg.PaymentWebhookSecret)
	uploadService := upload.NewService(uploadRepo, store, cfg.PresignTTL)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	facilityHandler := facility.NewHandler(facilityService)
	courtHandler := court.NewHandler(courtService)
	bookingHandler := booking.NewHandler(bookingService)
	productHandler := product.NewHandler(productService)
	rentalHandler := rental.NewHandler(rentalService)
	reviewHandler := review.NewHandler(reviewService)
	paymentHandler := payment.NewHandler(paymentService)
	uploadHandler := upload.NewHandler(uploadService)
	notifyHandler := notify.NewHandler(hub, jwtService)
	setupHandler := setup.NewHandler(db, cfg.SetupToken, cfg.IsProduction())

	authMiddleware := middleware.Auth(jwtService)
	requireOwner := middleware.RequireOwner()
	requireAdmin := middleware.RequireAdmin()

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	// WebSocket endpoint, upgraded before compression kicks in
	r.Get("/ws", notifyHandler.Serve)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Compress(5))

		r.Mount("/auth", authHandler.Routes(authMiddleware))

		r.Mount("/facilities", facilityHandler.Routes(authMiddleware, requireOwner, func(r chi.Router) {
			// Public sub-resources
			r.Get("/{id}/courts", courtHandler.ListByFacility)
			r.Get("/{id}/products", productHandler.ListByFacility)
			r.Get("/{id}/reviews", reviewHandler.ListByFacility)
			r.Get("/{id}/reviews/summary", reviewHandler.Summary)

			// Owner and customer sub-resources
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Post("/{id}/courts", courtHandler.Create)
				r.Post("/{id}/products", productHandler.Create)
				r.Get("/{id}/bookings", bookingHandler.ListByFacility)
				r.Get("/{id}/rentals", rentalHandler.ListByFacility)
				r.Post("/{id}/reviews", reviewHandler.Create)
			})
		}))

		r.Mount("/courts", courtHandler.Routes(authMiddleware, bookingHandler.Availability))
		r.Mount("/bookings", bookingHandler.Routes(authMiddleware))
		r.Mount("/products", productHandler.Routes(authMiddleware))
		r.Mount("/rentals", rentalHandler.Routes(authMiddleware))
		r.Mount("/reviews", reviewHandler.Routes(authMiddleware))
		r.Mount("/payments", paymentHandler.Routes(authMiddleware, requireAdmin))
		r.Mount("/files", uploadHandler.Routes(authMiddleware))
	})

	r.Post("/webhooks/payments", paymentHandler.Webhook)
	r.Mount("/api/admin/setup", setupHandler.Routes())

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stopListening()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
