package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BakiTacos/parata.my.id/internal/adminauth"
	"github.com/BakiTacos/parata.my.id/internal/catalog"
	"github.com/BakiTacos/parata.my.id/internal/httpapi"
	"github.com/BakiTacos/parata.my.id/internal/kv"
)

type Config struct {
	HTTPPort          string
	MongoURI          string
	MongoDBName       string
	RedisAddr         string
	RedisPassword     string
	SessionKey        string
	AdminEmail        string
	AdminPasswordHash string
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
	CartTTL           time.Duration
	StagingTTL        time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:       getEnv("MONGO_DB_NAME", "parata"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		SessionKey:        getEnv("SESSION_KEY", ""),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@parata.my.id"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		RequestTimeout:    30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		CartTTL:           90 * 24 * time.Hour,
		StagingTTL:        time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	if cfg.SessionKey == "" {
		log.Fatal("SESSION_KEY must be set")
	}
	if cfg.AdminPasswordHash == "" {
		log.Fatal("ADMIN_PASSWORD_HASH must be set")
	}

	ctx := context.Background()
	mongoDB, err := catalog.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	repo := catalog.NewMongoRepository(mongoDB)
	if err := repo.CreateIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	// Cart state is durable per client; checkout staging lives only for
	// the session that did the "buy now".
	cartStore := kv.NewRedisStore(redisClient, "client", cfg.CartTTL)
	stagingStore := kv.NewRedisStore(redisClient, "session", cfg.StagingTTL)

	catalogService := catalog.NewService(repo)
	sessions := adminauth.NewSessions([]byte(cfg.SessionKey), cfg.AdminEmail, cfg.AdminPasswordHash, 24*time.Hour)

	router := httpapi.NewRouter(
		httpapi.NewProductHandler(catalogService),
		httpapi.NewCartHandler(cartStore, catalogService),
		httpapi.NewCheckoutHandler(cartStore, stagingStore, catalogService),
		httpapi.NewAdminHandler(sessions, repo),
		adminauth.Gate(httpapi.AdminLoginPath),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	if err := mongoDB.Client().Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}
	log.Println("Storefront stopped")
}
