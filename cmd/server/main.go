package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dcreamy/internal/account"
	"dcreamy/internal/auth"
	"dcreamy/internal/businessday"
	"dcreamy/internal/config"
	"dcreamy/internal/infrastructure/logger"
	"dcreamy/internal/infrastructure/mysql"
	"dcreamy/internal/product"
	"dcreamy/internal/report"
	"dcreamy/internal/server"
	"dcreamy/internal/stock"
	"dcreamy/internal/transaction"
	"dcreamy/internal/warung"
)

func main() {
	// Missing .env is fine in production; the environment is already set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	clock := businessday.New(cfg.Shop.CutoffHour, cfg.Shop.UTCOffsetHours)

	accountController, profilesRepository := account.NewModule(db, tokens, zapLogger)
	warungController := warung.NewModule(db, profilesRepository, zapLogger)
	productController := product.NewModule(db, zapLogger)
	stockController, deductionService := stock.NewModule(db, zapLogger)
	transactionController := transaction.NewModule(db, deductionService, clock, zapLogger)
	reportController := report.NewModule(db, clock, zapLogger)

	router := server.NewRouter(server.Controllers{
		Account:     accountController,
		Warung:      warungController,
		Product:     productController,
		Stock:       stockController,
		Transaction: transactionController,
		Report:      reportController,
	}, tokens)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server stopped unexpectedly", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
