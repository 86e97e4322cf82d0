package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"gitlab.com/talentflow/services/backend/cmd/video-service/internal/config"
	"gitlab.com/talentflow/services/backend/cmd/video-service/internal/handlers"
	"gitlab.com/talentflow/services/backend/internal/ratelimit"
	"gitlab.com/talentflow/services/backend/internal/signaling"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Redis backs the connect rate limiter only; room state is
	// memory-resident and lost on restart. A missing or unreachable
	// redis leaves the limiter failing open.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Redis unreachable at %s, rate limiting disabled: %v", cfg.RedisAddr, err)
			rdb = nil
		}
		cancel()
	}
	limiter := ratelimit.NewLimiter(rdb)

	svc := signaling.NewService()
	upgrader := handlers.NewUpgrader(cfg.AllowedOrigin)

	var iceHandler *handlers.IceHandler
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		iceHandler = handlers.NewIceHandler(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	} else {
		log.Printf("[WARN] Twilio credentials not set, /api/ice-servers disabled")
	}

	r := mux.NewRouter()

	// WebSocket endpoint for signaling
	r.HandleFunc("/ws", handlers.ServeWs(svc, limiter, upgrader))

	// REST endpoints
	r.HandleFunc("/rooms", handlers.ListRooms(svc)).Methods("GET")
	r.HandleFunc("/rooms/{roomID}", handlers.GetRoom(svc)).Methods("GET")
	r.HandleFunc("/api/ice-servers", corsMiddleware(cfg.AllowedOrigin, func(w http.ResponseWriter, r *http.Request) {
		iceHandler.GetIceServers(w, r)
	})).Methods("GET", "OPTIONS")
	r.HandleFunc("/health", handlers.HealthCheck).Methods("GET")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Starting video service on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down video service...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Video service exited")
}

// corsMiddleware serves the browser preflight for the ICE endpoint.
func corsMiddleware(allowedOrigin string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}
