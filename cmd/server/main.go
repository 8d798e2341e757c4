package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/user/crooked-ladder/config"
	"github.com/user/crooked-ladder/internal/career"
	"github.com/user/crooked-ladder/internal/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "crooked-ladder",
	Short: "Career and risk progression server",
	Long:  "Crooked Ladder runs the career and risk progression engine behind a small JSON API: crime attempts, job applications with CV screening, and employment progression.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config/config.json", "Path to configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer() error {
	// Set up logger
	logger := setupLogger()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize career manager
	manager := career.NewCareerManager(cfg)
	manager.SetLogger(logger)

	// Load catalogs
	if err := loadCatalogs(manager, cfg, logger); err != nil {
		logger.Fatal("Failed to load catalogs", zap.Error(err))
	}

	// Set up HTTP server
	server := setupHTTPServer(cfg, manager, logger)

	// Start HTTP server
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", zap.Error(err))
		}
	}()

	// Start the day cycle after everything else is initialized
	manager.StartDayCycle()
	defer manager.StopDayCycle()

	// Wait for shutdown signal
	waitForShutdown(logger)
	return nil
}

func setupLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}

func loadCatalogs(manager *career.CareerManager, cfg config.Config, logger *zap.Logger) error {
	loader := career.NewCatalogLoader(cfg.Career.DataDir)

	jobs, err := loader.LoadJobs()
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}
	manager.LoadJobs(jobs)
	logger.Info("Loaded jobs", zap.Int("count", len(jobs)))

	crimes, err := loader.LoadCrimes()
	if err != nil {
		return fmt.Errorf("failed to load crimes: %w", err)
	}
	manager.LoadCrimes(crimes)
	logger.Info("Loaded crimes", zap.Int("count", len(crimes)))

	return nil
}

func setupHTTPServer(cfg config.Config, manager *career.CareerManager, logger *zap.Logger) *http.Server {
	// Create router
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	writeJSON := func(w http.ResponseWriter, status int, payload interface{}) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(payload)
	}

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Get("/jobs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, manager.ListJobs())
	})

	router.Get("/crimes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, manager.ListCrimes())
	})

	router.Post("/characters", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Name      string               `json:"name"`
			Education types.EducationLevel `json:"education"`
			Major     string               `json:"major"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		character, err := manager.RegisterCharacter(req.Name, req.Education, req.Major)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, character)
	})

	router.Get("/characters/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		status, err := manager.GetCharacterStatus(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, status)
	})

	router.Post("/characters/{id}/train", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Skill  types.Skill `json:"skill"`
			Amount int         `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		if err := manager.TrainSkill(chi.URLParam(r, "id"), req.Skill, req.Amount); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
	})

	router.Post("/characters/{id}/crimes/{crimeID}", func(w http.ResponseWriter, r *http.Request) {
		result, err := manager.AttemptCrime(chi.URLParam(r, "id"), chi.URLParam(r, "crimeID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})

	router.Post("/characters/{id}/applications", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			JobID string              `json:"job_id"`
			CV    types.ApplicationCV `json:"cv"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		result, err := manager.ApplyToJob(chi.URLParam(r, "id"), req.JobID, req.CV)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, result)
	})

	router.Post("/characters/{id}/performance", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Score float64 `json:"score"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		if err := manager.RecordPerformance(chi.URLParam(r, "id"), req.Score); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
	})

	router.Delete("/characters/{id}/employment", func(w http.ResponseWriter, r *http.Request) {
		if err := manager.QuitJob(chi.URLParam(r, "id")); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
	})

	router.Post("/admin/advance-day", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Days int `json:"days"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if req.Days == 0 {
			req.Days = 1
		}

		if err := manager.AdvanceDays(req.Days); err != nil {
			logger.Error("Failed to advance days", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
	})

	// Create HTTP server
	return &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
}

func waitForShutdown(logger *zap.Logger) {
	// Set up channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	sig := <-sigChan
	logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("Shutting down")
}
