package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/college-erp-api/internal/models"
	"github.com/noah-isme/college-erp-api/internal/repository"
	"github.com/noah-isme/college-erp-api/internal/seed"
	"github.com/noah-isme/college-erp-api/internal/service"
	"github.com/noah-isme/college-erp-api/pkg/config"
	"github.com/noah-isme/college-erp-api/pkg/logger"
)

func main() {
	printToken := flag.Bool("token", false, "print an admin bearer token after seeding")
	tokenOnly := flag.Bool("token-only", false, "print an admin bearer token without touching the store")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if !*tokenOnly {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		store, closeStore, err := repository.OpenDocumentStore(ctx, cfg, nil)
		if err != nil {
			logr.Fatal("failed to open document store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
		}
		defer closeStore(context.Background()) //nolint:errcheck

		summary, err := seed.New(store, logr).Run(ctx)
		if err != nil {
			logr.Fatal("seeding failed", zap.Error(err))
		}
		for _, collection := range models.CollectionNames {
			fmt.Printf("%-14s %d\n", collection, summary[collection])
		}
	}

	if *printToken || *tokenOnly {
		auth := service.NewAuthService(validator.New(), logr, service.AuthConfig{
			AccessTokenSecret: cfg.JWT.Secret,
			AccessTokenExpiry: cfg.JWT.Expiration,
			Issuer:            cfg.JWT.Issuer,
		})
		issued, err := auth.IssueToken(service.IssueTokenRequest{UserID: "seed-admin", Role: models.RoleAdmin, FullName: "Seed Administrator"})
		if err != nil {
			logr.Fatal("failed to issue token", zap.Error(err))
		}
		fmt.Printf("Bearer %s\n(expires %s)\n", issued.AccessToken, issued.ExpiresAt.Format(time.RFC3339))
	}
}
