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

	"github.com/finquest/finquest-api/internal/cache"
	"github.com/finquest/finquest-api/internal/config"
	"github.com/finquest/finquest-api/internal/handler"
	"github.com/finquest/finquest-api/internal/integrations/advisor"
	"github.com/finquest/finquest-api/internal/middleware"
	"github.com/finquest/finquest-api/internal/repository"
	"github.com/finquest/finquest-api/internal/service"
	emailutil "github.com/finquest/finquest-api/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	_ = godotenv.Load()
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
	sessions := cache.NewSessionCache(cfg.SessionTTL, nil)
	advisorClient := advisor.NewClient(cfg, logger)
	mailer := emailutil.NewSender(cfg, logger)
	svc := service.NewService(repo, logger, cfg, advisorClient, sessions, mailer)
	h := handler.NewHandler(svc)

	// Background jobs: hourly session sweep, daily goal reminders
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", svc.SweepSessions); err != nil {
		logger.Fatalf("Failed to schedule session sweep: %v", err)
	}
	if _, err := scheduler.AddFunc("@daily", svc.NotifyOffTrackGoals); err != nil {
		logger.Fatalf("Failed to schedule goal reminders: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg, sessions))
	authRouter.HandleFunc("/profile", h.SaveProfile).Methods("PUT")
	authRouter.HandleFunc("/profile", h.GetProfile).Methods("GET")
	authRouter.HandleFunc("/analyze", h.Analyze).Methods("POST")
	authRouter.HandleFunc("/health-score", h.HealthScore).Methods("POST")
	authRouter.HandleFunc("/projections", h.Projections).Methods("POST")
	authRouter.HandleFunc("/goals", h.SaveGoal).Methods("PUT")
	authRouter.HandleFunc("/goals", h.GetGoal).Methods("GET")
	authRouter.HandleFunc("/goals/feasibility", h.GoalFeasibility).Methods("GET")

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
