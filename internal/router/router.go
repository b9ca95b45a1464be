// Package router wires handlers onto the echo instance, grouped by the
// access level each route requires.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/cinecore/catalog/internal/config"
	"github.com/cinecore/catalog/internal/handler"
	"github.com/cinecore/catalog/internal/middleware"
	"github.com/cinecore/catalog/internal/model"
)

// Deps bundles everything route registration needs.
type Deps struct {
	Auth       *handler.AuthHandler
	Categories *handler.CategoryHandler
	Movies     *handler.MovieHandler
	Links      *handler.MovieCategoryHandler
	Status     *handler.MovieStatusHandler
	Profile    *handler.ProfileHandler
	Users      *handler.UserAdminHandler

	JWTSecret string
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// Register sets up the full route table. Reads of the public catalog go
// through the response cache; everything under /api shares the rate limiter.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api", middleware.NewTokenBucket(d.RateLimit, d.Redis))

	auth := api.Group("/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.POST("/refresh", d.Auth.Refresh)
	auth.POST("/logout", d.Auth.Logout)

	cache := middleware.NewRedisCache(d.Cache, d.Redis)

	// Public catalog reads.
	api.GET("/categories", d.Categories.List, cache)
	api.GET("/categories/:id", d.Categories.Get, cache)
	api.GET("/categories/:id/movies", d.Links.MoviesOfCategory, cache)
	api.GET("/movies", d.Movies.List, cache)
	api.GET("/movies/:id", d.Movies.Get, cache)
	api.GET("/movies/:id/categories", d.Links.CategoriesOfMovie, cache)

	jwt := middleware.JWTAuth(d.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleUser, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	// Authenticated self-service.
	profile := api.Group("/users/profile", jwt, anyRole)
	profile.GET("", d.Profile.Get)
	profile.PATCH("", d.Profile.Update)
	profile.GET("/movies", d.Status.MyMovies)
	profile.GET("/movies/favorites", d.Status.MyFavorites)
	profile.GET("/movies/watched", d.Status.MyWatched)
	profile.PUT("/movies/:movieId/status", d.Status.Update)
	profile.GET("/movies/:movieId/status", d.Status.Get)

	// Catalog management, ADMIN only.
	api.POST("/categories", d.Categories.Create, jwt, adminOnly)
	api.PATCH("/categories/:id", d.Categories.Update, jwt, adminOnly)
	api.DELETE("/categories/:id", d.Categories.Delete, jwt, adminOnly)
	api.POST("/movies", d.Movies.Create, jwt, adminOnly)
	api.PATCH("/movies/:id", d.Movies.Update, jwt, adminOnly)
	api.DELETE("/movies/:id", d.Movies.Delete, jwt, adminOnly)
	api.POST("/movies/:id/categories/:categoryId", d.Links.Link, jwt, adminOnly)
	api.DELETE("/movies/:id/categories/:categoryId", d.Links.Unlink, jwt, adminOnly)

	// User administration, ADMIN only.
	users := api.Group("/users", jwt, adminOnly)
	users.GET("", d.Users.List)
	users.GET("/:id", d.Users.Get)
	users.PATCH("/:id", d.Users.Update)
	users.DELETE("/:id", d.Users.Delete)
}
