// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"destiny-backend/internal/auth"
	"destiny-backend/internal/common/database"
	"destiny-backend/internal/config"
	"destiny-backend/internal/courtship"
	"destiny-backend/internal/lifecycle"
	"destiny-backend/internal/matching"
	"destiny-backend/internal/negotiation"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Destiny Matching API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Printf("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional, candidate cache degrades without it)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v, continuing without candidate cache", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Initialize Auth system
	log.Println("\n🔐 Step 6: Initializing authentication system...")

	authService := auth.NewService(&auth.Config{
		JWTSecret:         cfg.JWTSecret,
		AccessTokenExpiry: cfg.AccessTokenExpiry,
	})
	authMiddleware := auth.NewMiddleware(authService)

	log.Println("✅ Authentication system initialized")

	// 7. Initialize Matching module
	log.Println("\n💘 Step 7: Initializing Matching module...")

	scoringConfig := matching.DefaultScoringConfig()
	scoringConfig.DistanceWeight = cfg.DistanceWeight
	scoringConfig.AgeWeight = cfg.AgeWeight
	scoringConfig.DeficitWeight = cfg.DeficitWeight

	candidateCache := matching.NewCandidateCache(redisClient, cfg.CandidateCacheTTL)
	matchingRepo := matching.NewPostgresRepository(db)
	matchingService := matching.NewService(matchingRepo, matching.NewScorer(scoringConfig), candidateCache)
	matchingHandler := matching.NewHandler(matchingService)

	log.Println("✅ Matching module initialized")

	// 8. Initialize Courtship module
	log.Println("\n💌 Step 8: Initializing Courtship module...")

	courtshipRepo := courtship.NewPostgresRepository(db)
	courtshipService := courtship.NewService(courtshipRepo, candidateCache, cfg.ReceivedLettersLimit)
	courtshipHandler := courtship.NewHandler(courtshipService)

	log.Println("✅ Courtship module initialized")

	// 9. Initialize Negotiation module
	log.Println("\n🤝 Step 9: Initializing Negotiation module...")

	negotiationHub := negotiation.NewHub()
	go negotiationHub.Run()
	log.Println("   ✅ WebSocket hub started")

	negotiationRepo := negotiation.NewPostgresRepository(db)
	negotiationService := negotiation.NewService(negotiationRepo, negotiationHub)
	negotiationHandler := negotiation.NewHandler(negotiationService, negotiationHub)

	log.Println("✅ Negotiation module initialized")

	// 10. Initialize Lifecycle module
	log.Println("\n🔄 Step 10: Initializing Lifecycle module...")

	lifecycleRepo := lifecycle.NewPostgresRepository(db)
	lifecycleService := lifecycle.NewService(lifecycleRepo, matchingRepo, candidateCache)
	journeyService := lifecycle.NewJourneyService(matchingService, courtshipRepo, negotiationService, lifecycleRepo)
	lifecycleHandler := lifecycle.NewHandler(lifecycleService, journeyService)

	log.Println("✅ Lifecycle module initialized")

	// 11. Setup routes
	log.Println("\n🛣️  Step 11: Setting up routes...")
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	matching.RegisterRoutes(router, matchingHandler, authMiddleware)
	log.Println("   ✅ Matching routes registered")

	courtship.RegisterRoutes(router, courtshipHandler, authMiddleware)
	log.Println("   ✅ Courtship routes registered")

	negotiation.RegisterRoutes(router, negotiationHandler, authMiddleware)
	log.Println("   ✅ Negotiation routes registered")

	lifecycle.RegisterRoutes(router, lifecycleHandler, authMiddleware)
	log.Println("   ✅ Lifecycle routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 12. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// drain in-flight requests before stopping the hub they publish to
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("   - Shutting down negotiation hub...")
	negotiationHub.Shutdown()

	log.Println("✅ Server exited gracefully")
}

var startTime = time.Now()

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
