package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cinecore/catalog/internal/config"
	"github.com/cinecore/catalog/internal/database"
	"github.com/cinecore/catalog/internal/handler"
	"github.com/cinecore/catalog/internal/model"
	"github.com/cinecore/catalog/internal/queue"
	"github.com/cinecore/catalog/internal/repository"
	"github.com/cinecore/catalog/internal/router"
	"github.com/cinecore/catalog/internal/service"
	"github.com/cinecore/catalog/internal/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()

	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	movieRepo := repository.NewMovieRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	linkRepo := repository.NewMovieCategoryRepo(db)
	statusRepo := repository.NewMovieUserStatusRepo(db)

	seedAdmin(cfg, userRepo)

	events := service.NewCatalogPublisher(queue.BrokerURL())
	go queue.StartCatalogConsumer()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewRequestValidator()

	router.Register(e, router.Deps{
		Auth:       handler.NewAuthHandler(userRepo, tokenRepo, cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLDays, cfg.BcryptCost),
		Categories: handler.NewCategoryHandler(categoryRepo),
		Movies:     handler.NewMovieHandler(movieRepo, events),
		Links:      handler.NewMovieCategoryHandler(linkRepo),
		Status:     handler.NewMovieStatusHandler(statusRepo, movieRepo),
		Profile:    handler.NewProfileHandler(userRepo, tokenRepo, cfg.BcryptCost),
		Users:      handler.NewUserAdminHandler(userRepo, tokenRepo, cfg.BcryptCost),
		JWTSecret:  cfg.JWTSecret,
		Redis:      rdb,
		Cache:      config.LoadCacheConfig(),
		RateLimit:  config.LoadRateLimitConfig(),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the bootstrap ADMIN account on first start when
// ADMIN_EMAIL and ADMIN_PASSWORD are set. An already existing account with
// that email is left alone.
func seedAdmin(cfg config.Config, users *repository.UserRepo) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("seed admin: hash password: %v", err)
	}
	_, err = users.Create(ctx, "Administrator", cfg.AdminEmail, hash, model.RoleAdmin)
	switch {
	case err == nil:
		log.Printf("seed admin: created %s", cfg.AdminEmail)
	case errors.Is(err, repository.ErrEmailExists):
		// already seeded
	default:
		log.Fatalf("seed admin: %v", err)
	}
}
