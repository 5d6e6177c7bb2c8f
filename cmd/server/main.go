package main

import (
	"adventcal/internal/analytics"
	"adventcal/internal/cache"
	"adventcal/internal/config"
	"adventcal/internal/gateway"
	"adventcal/internal/metrics"
	"adventcal/internal/repository"
	"adventcal/internal/service"
	"adventcal/internal/session"
	"adventcal/internal/store"
	"adventcal/internal/transport/rest"
	"adventcal/internal/transport/rest/handler"
	"adventcal/internal/transport/ws"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	theme, err := config.LoadTheme(cfg.ClientThemeFile)
	if err != nil {
		log.Fatal("Failed to load client theme:", err)
	}

	// Redis connection
	var rdb *redis.Client
	if cfg.UsesRedis() {
		opts, err := redis.ParseURL(cfg.RedisURI)
		if err != nil {
			log.Fatal("Invalid REDIS_URI:", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")
	}

	// MongoDB journal (optional)
	var events repository.EventRepo
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(context.Background())

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = mongoClient.Ping(pingCtx, nil)
		cancel()
		if err != nil {
			log.Fatal("Failed to ping MongoDB:", err)
		}
		db := mongoClient.Database(cfg.MongoDB)
		if err := repository.EnsureIndexes(ctx, db); err != nil {
			log.Printf("Warning: %v", err)
		}
		events = repository.NewEventRepo(db)
		log.Println("Connected to MongoDB, event journal enabled")
	}

	// Session storage
	var kv session.KV
	switch cfg.SessionBackend {
	case config.BackendRedis:
		kv = cache.NewRedisKV(rdb, "advent", 0)
	case config.BackendSQLite:
		sqlite, err := cache.OpenSQLiteKV(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatal("Failed to open session database:", err)
		}
		defer sqlite.Close()
		kv = sqlite
	default:
		kv = cache.NewMemoryKV()
	}
	log.Printf("Session backend: %s", cfg.SessionBackend)

	// Gateway
	var (
		gw       gateway.Gateway
		switcher handler.ClientSwitcher
	)
	if cfg.IsMockMode() {
		var ranking gateway.Ranking = cache.NewMemoryLeaderboard()
		if cfg.MockRanking == config.BackendRedis {
			ranking = cache.NewLeaderboardCache(rdb, "advent:mock")
		}
		mock, err := gateway.NewMockGateway(ctx, gateway.MockOptions{
			ClientID:  cfg.MockClient,
			Ranking:   ranking,
			EventYear: cfg.GameLayer.EventYear,
			Seed:      time.Now().UnixNano(),
		})
		if err != nil {
			log.Fatal("Failed to start mock gateway:", err)
		}
		gw, switcher = mock, mock
		log.Println("GameLayer API key NOT SET (using mock data)")
	} else {
		year := cfg.GameLayer.EventYear
		if year == 0 {
			year = time.Now().Year()
		}
		gw = gateway.NewHTTPGateway(gateway.HTTPConfig{
			BaseURL:    cfg.GameLayer.BaseURL,
			APIKey:     cfg.GameLayer.APIKey,
			GameID:     cfg.GameLayer.GameID,
			ClientID:   cfg.GameLayer.ClientID,
			Account:    cfg.GameLayer.Account,
			EventYear:  year,
			EventMonth: cfg.GameLayer.EventMonth,
			Timeout:    cfg.GameLayer.Timeout,
			MaxRetries: cfg.GameLayer.MaxRetries,
			RPS:        cfg.GameLayer.RPS,
			Burst:      cfg.GameLayer.Burst,
		})
		log.Printf("GameLayer API: %s (game %s)", cfg.GameLayer.BaseURL, cfg.GameLayer.GameID)
	}

	// Core
	st := store.New(store.Initial(theme))
	var journal analytics.Journal
	if events != nil {
		journal = events
	}
	actions := service.NewActions(st, gw, session.NewStore(kv), analytics.NewTracker(gw, journal), service.Options{
		TopSize:    cfg.LeaderboardTopSize,
		PageSize:   cfg.LeaderboardPageSize,
		Cap:        cfg.LeaderboardCap,
		BaseConfig: theme,
	})

	// The persisted session is in the state before anything can read it
	player := actions.RestoreSession(ctx)

	// Initialize WebSocket hub
	wsHub := ws.NewHub(ctx, st.Snapshot)
	go wsHub.Follow(ctx, st)
	log.Println("WebSocket hub started")

	go func() {
		if err := actions.LoadAndRefresh(ctx, player); err != nil {
			log.Printf("Initial load failed: %v", err)
		}
	}()

	container := &rest.Container{
		Actions:     actions,
		Store:       st,
		AuthService: service.NewAuthService(cfg.JWTSecret, cfg.TokenTTL),
		WSHub:       wsHub,
		Clients:     switcher,
		Events:      events,
		Metrics:     metrics.Handler(),
		CORSOrigins: cfg.CORSOrigins,
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: rest.NewRouter(container),
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Println("Endpoints:")
		log.Println("  GET  /v1/state")
		log.Println("  POST /v1/calendar/{day}/open")
		log.Println("  POST /v1/tasks/{taskId}/complete")
		log.Println("  POST/DELETE /v1/leaderboard/modal")
		log.Println("  POST /v1/players, /v1/session/signin")
		log.Println("  WS   /v1/ws")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")
	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
