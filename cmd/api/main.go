package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/donation-service/internal/config"
	"github.com/Dan9191/donation-service/internal/handler"
	"github.com/Dan9191/donation-service/internal/integrations/stripe"
	"github.com/Dan9191/donation-service/internal/middleware"
	"github.com/Dan9191/donation-service/internal/repository"
	"github.com/Dan9191/donation-service/internal/service"
	"github.com/Dan9191/donation-service/internal/uploads"
	"github.com/Dan9191/donation-service/internal/utils/email"
)

const uploadSweepGrace = 24 * time.Hour

func main() {
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	uploader, err := uploads.NewSaver(cfg.UploadDir, logger)
	if err != nil {
		logger.Fatalf("Failed to prepare upload directory: %v", err)
	}
	stripeClient := stripe.NewClient(cfg, logger)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(repo, stripeClient, mailer, logger, cfg)
	h := handler.NewHandler(svc, uploader, logger)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/ping", h.Ping).Methods("GET")
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/causes", h.ListCauses).Methods("GET")
	r.HandleFunc("/donations", h.ListDonations).Methods("GET")
	r.HandleFunc("/causes/{id:[0-9]+}/create-checkout-session", h.CreateCheckoutSession).Methods("POST")
	r.HandleFunc("/stripe/webhook", h.StripeWebhook).Methods("POST")
	r.HandleFunc("/donation/payment/success", h.PaymentSuccess).Methods("GET")
	r.HandleFunc("/donation/payment/cancelled", h.PaymentCancelled).Methods("GET")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(svc))
	authRouter.HandleFunc("/causes", h.CreateCause).Methods("POST")
	authRouter.HandleFunc("/causes/{id:[0-9]+}", h.UpdateCause).Methods("PUT")
	authRouter.HandleFunc("/causes/{id:[0-9]+}", h.DeleteCause).Methods("DELETE")
	authRouter.HandleFunc("/donations/export", h.ExportDonations).Methods("GET")

	// Daily sweep of upload files no longer referenced by any cause
	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		referenced, err := repo.ReferencedImages()
		if err != nil {
			logger.Errorf("Upload sweep failed: %v", err)
			return
		}
		if _, err := uploader.Sweep(referenced, uploadSweepGrace); err != nil {
			logger.Errorf("Upload sweep failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule upload sweep: %v", err)
	}
	c.Start()
	defer c.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
