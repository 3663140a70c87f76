package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/saudecerta/storefront/internal/auth"
	"github.com/saudecerta/storefront/internal/checkout"
	"github.com/saudecerta/storefront/internal/config"
	"github.com/saudecerta/storefront/internal/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("connected to database")

	keys, err := auth.NewKeys(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Error("auth keys", slog.String("error", err.Error()))
		os.Exit(1)
	}

	gateway := checkout.NewStripeGateway(cfg.Stripe.SecretKey)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      API(cfg, db, gateway, keys, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("server starting", slog.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
