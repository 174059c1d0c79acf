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

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"tourmate/internal/audit"
	"tourmate/internal/config"
	api "tourmate/internal/http"
	"tourmate/internal/http/handlers"
	"tourmate/internal/repositories"
	"tourmate/internal/services"
	"tourmate/internal/storage"
	"tourmate/internal/storage/csvstore"
	"tourmate/internal/storage/mysqlstore"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gateway, closeDB, err := openGateway(cfg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeDB()

	store := repositories.NewStore(gateway)
	if err := store.Load(); err != nil {
		log.Fatalf("load collections: %v", err)
	}

	trail := audit.NewFileSink(cfg.AuditFile)

	seeder := services.AuthService{Store: store, Audit: trail, JWTSecret: cfg.JWTSecret}
	if err := seeder.EnsureDefaultAdmin(cfg.AdminPassword); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	handler := handlers.Handler{
		Store:        store,
		Audit:        trail,
		JWTSecret:    cfg.JWTSecret,
		TripDuration: cfg.TripDuration,
	}
	r := api.NewRouter(handler, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              cfg.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (store driver: %s)", cfg.AppAddr, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}

	log.Println("server stopped")
}

func openGateway(cfg config.Config) (storage.Gateway, func(), error) {
	if cfg.StoreDriver == config.DriverMySQL {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return mysqlstore.New(db), func() { db.Close() }, nil
	}

	st, err := csvstore.New(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	return st, func() {}, nil
}
