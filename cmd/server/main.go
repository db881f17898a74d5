package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/trichyfresh/connect/internal/adapter/auth"
	"github.com/trichyfresh/connect/internal/adapter/handler"
	"github.com/trichyfresh/connect/internal/adapter/storage"
	"github.com/trichyfresh/connect/internal/config"
	"github.com/trichyfresh/connect/internal/core/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to connect mysql: %v", err)
	}
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping mysql: %v", err)
	}
	log.Println("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	log.Println("connected to redis")

	// Initialize adapters
	mysqlAdapter := storage.NewMySQLAdapter(db)
	redisAdapter := storage.NewRedisAdapter(rdb)
	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	hasher := auth.NewBcryptHasher(0)

	// Initialize services
	userService := service.NewUserService(mysqlAdapter, hasher, tokens)
	catalogService := service.NewCatalogService(mysqlAdapter, mysqlAdapter)
	cartService := service.NewCartService(mysqlAdapter)
	orderService := service.NewOrderService(mysqlAdapter, redisAdapter)
	producerService := service.NewProducerService(mysqlAdapter)
	lookupService := service.NewLookupService(mysqlAdapter, redisAdapter)

	// Initialize HTTP server
	router := handler.NewRouter(
		handler.NewAuthHandler(userService),
		handler.NewConsumerHandler(catalogService, cartService, orderService),
		handler.NewProducerHandler(producerService, lookupService, userService),
		handler.NewMiddleware(tokens),
	)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	rdb.Close()
	db.Close()
	log.Println("connections closed")
}
