// cmd/api/main.go
// Main entry point for the application.
// This file bootstraps all components and starts the server.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/emberlyhq/emberly-backend/internal/archetype"
	"github.com/emberlyhq/emberly-backend/internal/auth"
	"github.com/emberlyhq/emberly-backend/internal/common/database"
	"github.com/emberlyhq/emberly-backend/internal/config"
	"github.com/emberlyhq/emberly-backend/internal/feedback"
	"github.com/emberlyhq/emberly-backend/internal/insights"
	"github.com/emberlyhq/emberly-backend/internal/journey"
	"github.com/emberlyhq/emberly-backend/internal/notify"
	"github.com/emberlyhq/emberly-backend/internal/profile"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Emberly Personalization API")
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
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client

	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable: %v, continuing without Redis", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Printf("❌ Migration error: %v", err)
		log.Fatal("Failed to run migrations")
	}
	log.Println("✅ Database migrations completed")

	// Background context for workers and schedulers
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	// 7. Initialize Archetype module
	log.Println("\n🧭 Step 7: Initializing Archetype module...")
	archetypeRepo := archetype.NewPostgresRepository(db)
	archetypeHandler := archetype.NewHandler(archetypeRepo)
	log.Println("✅ Archetype module initialized")

	// 8. Initialize Feedback module
	log.Println("\n📊 Step 8: Initializing Feedback module...")

	var analysisCache feedback.AnalysisCache
	if redisClient != nil {
		analysisCache = feedback.NewRedisAnalysisCache(redisClient, cfg.AnalysisCacheTTL)
		log.Println("   ✅ Using Redis analysis cache")
	} else {
		analysisCache = feedback.NewNoopAnalysisCache()
		log.Println("   ⚠️  Analysis cache disabled (no Redis)")
	}

	feedbackRepo := feedback.NewPostgresRepository(db)
	// The rebuild worker is wired in after the profile module exists
	feedbackService := feedback.NewService(feedbackRepo, analysisCache, nil, cfg.AnalysisWindowSize)
	log.Println("✅ Feedback module initialized")

	// 9. Initialize Notification module
	log.Println("\n🔔 Step 9: Initializing Notification module...")

	var emailSender notify.EmailSender
	if cfg.EnableCelebrationEmails {
		switch cfg.EmailProvider {
		case "sendgrid":
			emailSender, err = notify.NewSendGridEmailSender(cfg.SendGridAPIKey, cfg.EmailFrom)
			if err != nil {
				log.Printf("   ⚠️  SendGrid init failed (%v), using mock email sender", err)
				emailSender = notify.NewMockEmailSender()
			} else {
				log.Println("   ✅ Using SendGrid for celebration emails")
			}
		default:
			emailSender = notify.NewMockEmailSender()
			log.Println("   📝 Using mock email sender (development mode)")
		}
	} else {
		log.Println("   ⚠️  Celebration emails disabled")
	}

	var smsSender notify.SMSSender
	if cfg.EnableCelebrationSMS {
		switch cfg.SMSProvider {
		case "twilio":
			smsSender, err = notify.NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
			if err != nil {
				log.Printf("   ⚠️  Twilio init failed (%v), using mock SMS sender", err)
				smsSender = notify.NewMockSMSSender()
			} else {
				log.Println("   ✅ Using Twilio for celebration SMS")
			}
		default:
			smsSender = notify.NewMockSMSSender()
			log.Println("   📝 Using mock SMS sender (development mode)")
		}
	} else {
		log.Println("   ⚠️  Celebration SMS disabled")
	}

	var notifier journey.Notifier
	if emailSender != nil || smsSender != nil {
		notifier = notify.NewService(notify.NewPostgresRepository(db), emailSender, smsSender)
	}
	log.Println("✅ Notification module initialized")

	// 10. Initialize Journey module
	log.Println("\n🗺️  Step 10: Initializing Journey module...")
	journeyRepo := journey.NewPostgresRepository(db)
	journeyService := journey.NewService(journeyRepo, feedbackService, archetypeRepo, notifier)
	journeyHandler := journey.NewHandler(journeyService)

	if cfg.EnableMilestoneScheduler {
		scheduler := journey.NewScheduler(journeyService, feedbackService)
		scheduler.Start(bgCtx)
		log.Println("   ✅ Milestone scheduler started")
	} else {
		log.Println("   ⚠️  Milestone scheduler disabled")
	}
	log.Println("✅ Journey module initialized")

	// 11. Initialize Profile module
	log.Println("\n👤 Step 11: Initializing Profile module...")
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(
		profileRepo,
		feedbackService,
		archetypeRepo,
		journeyRepo,
		&profile.StaticEngagementProvider{},
	)
	profileHandler := profile.NewHandler(profileService)

	rebuildWorker := profile.NewRebuildWorker(profileService, cfg.RebuildQueueSize, cfg.RebuildWorkers)
	rebuildWorker.Start(bgCtx)
	feedbackService = feedback.NewService(feedbackRepo, analysisCache, rebuildWorker, cfg.AnalysisWindowSize)
	feedbackHandler := feedback.NewHandler(feedbackService)
	log.Println("✅ Profile module initialized (rebuild worker running)")

	// 12. Initialize Insights module
	log.Println("\n💡 Step 12: Initializing Insights module...")

	var generator insights.TextGenerator
	switch cfg.TextGenProvider {
	case "openai":
		generator = insights.NewOpenAIClient(cfg.TextGenBaseURL, cfg.TextGenAPIKey, cfg.TextGenModel, cfg.TextGenTimeout)
		log.Printf("   ✅ Using OpenAI-compatible generator (%s)", cfg.TextGenModel)
	default:
		generator = &insights.MockTextGenerator{}
		log.Println("   📝 Using mock text generator (development mode)")
	}

	insightsService := insights.NewService(generator, profileService)
	insightsHandler := insights.NewHandler(insightsService)
	log.Println("✅ Insights module initialized")

	// 13. Setup routes
	log.Println("\n🛣️  Step 13: Setting up routes...")
	router := mux.NewRouter()
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.HandleFunc("/api", apiInfo).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	feedback.RegisterRoutes(router, feedbackHandler, authMiddleware)
	log.Println("   ✅ Feedback routes registered")

	journey.RegisterRoutes(router, journeyHandler, authMiddleware)
	log.Println("   ✅ Journey routes registered")

	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	log.Println("   ✅ Profile routes registered")

	archetype.RegisterRoutes(router, archetypeHandler, authMiddleware)
	log.Println("   ✅ Archetype routes registered")

	insightsRouter := chi.NewRouter()
	insights.RegisterRoutes(insightsRouter, insightsHandler, authMiddleware)
	router.PathPrefix("/api/v1/insights").Handler(insightsRouter)
	log.Println("   ✅ Insights routes registered")

	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 14. Create and start HTTP server
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
	bgCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

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

// apiInfo returns API information
func apiInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{
        "name": "Emberly Personalization API",
        "version": "1.0.0",
        "status": "running",
        "endpoints": {
            "health": "GET /health",
            "metrics": "GET /metrics",
            "feedback": {
                "submit": "POST /api/v1/feedback",
                "analysis": "GET /api/v1/feedback/analysis",
                "predict": "POST /api/v1/feedback/predict"
            },
            "profile": {
                "get": "GET /api/v1/profile",
                "rebuild": "POST /api/v1/profile/rebuild"
            },
            "journey": {
                "analytics": "GET /api/v1/journey",
                "milestones": "GET /api/v1/journey/milestones",
                "detect": "GET /api/v1/journey/milestones/detect",
                "create": "POST /api/v1/journey/milestones",
                "celebrate": "POST /api/v1/journey/milestones/{id}/celebrate"
            },
            "archetype": {
                "get": "GET /api/v1/archetype",
                "set": "PUT /api/v1/archetype"
            },
            "insights": {
                "suggestions": "GET /api/v1/insights/suggestions"
            }
        }
    }`))
}

// Middleware functions

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

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	log.Println("   - Creating/updating tables...")

	migrations := []string{
		// Users table. Auth lives in the hosted identity service; this
		// table only mirrors what the engine needs (tenure, contact).
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            display_name VARCHAR(100) NOT NULL DEFAULT '',
            email VARCHAR(255) UNIQUE,
            phone VARCHAR(20) UNIQUE,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )`,

		// Feedback events, append-only
		`CREATE TABLE IF NOT EXISTS feedback_events (
            id UUID PRIMARY KEY,
            user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            suggestion_id VARCHAR(100) NOT NULL,
            suggestion_type VARCHAR(50) NOT NULL DEFAULT '',
            category VARCHAR(100) NOT NULL,
            intensity VARCHAR(20) NOT NULL,
            label VARCHAR(30) NOT NULL,
            outcome VARCHAR(20),
            notes TEXT,
            partner_notes TEXT,
            time_of_day VARCHAR(20) NOT NULL DEFAULT 'unknown',
            day_of_week SMALLINT NOT NULL DEFAULT -1,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )`,

		// Archetype assignments from the quiz subsystem
		`CREATE TABLE IF NOT EXISTS archetype_assignments (
            user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
            primary_archetype VARCHAR(30) NOT NULL,
            secondary_archetype VARCHAR(30),
            scores JSONB DEFAULT '{}',
            completed_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )`,

		// Profile snapshots, one row per user
		`CREATE TABLE IF NOT EXISTS user_preference_profiles (
            user_id INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
            primary_archetype VARCHAR(30) NOT NULL DEFAULT '',
            secondary_archetype VARCHAR(30),
            archetype_confidence DOUBLE PRECISION NOT NULL DEFAULT 0.5,
            overall_satisfaction DOUBLE PRECISION NOT NULL DEFAULT 0.7,
            optimal_intensity VARCHAR(20) NOT NULL DEFAULT 'flirty',
            total_events INTEGER NOT NULL DEFAULT 0,
            relationship_phase VARCHAR(20) NOT NULL DEFAULT 'exploring',
            top_categories JSONB DEFAULT '[]',
            avoidance_patterns JSONB DEFAULT '[]',
            success_patterns JSONB DEFAULT '[]',
            personality_traits JSONB DEFAULT '{}',
            adaptation_signals JSONB DEFAULT '[]',
            future_recommendations JSONB DEFAULT '[]',
            engagement JSONB DEFAULT '{}',
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )`,

		// Milestones
		`CREATE TABLE IF NOT EXISTS milestones (
            id SERIAL PRIMARY KEY,
            user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            type VARCHAR(50) NOT NULL,
            title VARCHAR(200) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            significance VARCHAR(10) NOT NULL DEFAULT 'medium',
            context JSONB DEFAULT '{}',
            celebrated BOOLEAN NOT NULL DEFAULT FALSE,
            celebration_notes TEXT,
            achieved_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
        )`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_feedback_events_user_created ON feedback_events(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_events_created ON feedback_events(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_milestones_user ON milestones(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_milestones_user_type ON milestones(user_id, type)`,
	}

	for i, migration := range migrations {
		log.Printf("   - Running migration %d/%d...", i+1, len(migrations))
		if _, err := db.Exec(migration); err != nil {
			if !strings.Contains(err.Error(), "already exists") {
				return fmt.Errorf("migration %d failed: %w", i+1, err)
			}
			log.Printf("   - Migration %d skipped (already exists)", i+1)
		}
	}

	log.Println("   ✅ All migrations executed successfully")
	return nil
}
