// Command seedadmin creates or resets a back-office admin account.
//
//	ADMIN_EMAIL=owner@example.com ADMIN_PASSWORD=... go run ./cmd/seedadmin
package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/config"
	"github.com/srikumaragency/b-admin-prod-03/internal/infra"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
	"github.com/srikumaragency/b-admin-prod-03/internal/repository"
	"github.com/srikumaragency/b-admin-prod-03/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	if email == "" || len(password) < 8 {
		log.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD (at least 8 characters) are required")
	}
	if name == "" {
		name = "Store Admin"
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	admin := &model.Admin{
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: hash,
		Rol:          "admin",
		IsActive:     true,
	}
	if err := repository.NewAdminRepository(db).Upsert(context.Background(), admin); err != nil {
		log.Fatal().Err(err).Msg("upsert failed")
	}
	log.Info().Str("email", admin.Email).Msg("admin created or updated")
}
