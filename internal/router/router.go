// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/trailwatch/trailwatch/internal/config"
	"github.com/trailwatch/trailwatch/internal/handler"
	"github.com/trailwatch/trailwatch/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Cfg     config.Config
	Trails  *handler.TrailHandler
	Traffic *handler.TrafficHandler
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Redis   *redis.Client // nil disables caching and rate limiting
}

// Register sets up global middleware and all API routes.
func Register(e *echo.Echo, d Deps) {
	e.HTTPErrorHandler = errorHandler(d.Cfg)

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("10K"))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{d.Cfg.FrontendURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), d.Redis))

	e.GET("/health", handler.Health)
	e.GET("/api", handler.APIInfo)

	optional := middleware.OptionalAuth(d.Cfg.JWTSecret)
	protect := middleware.JWTAuth(d.Cfg.JWTSecret)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), d.Redis)

	// Trail and traffic mutation endpoints are intentionally open,
	// matching the documented system; they would be protected in
	// production.
	trails := e.Group("/api/trails")
	trails.GET("", d.Trails.List, optional)
	trails.GET("/:id", d.Trails.GetByID, optional)
	trails.POST("", d.Trails.Create)
	trails.PUT("/:id", d.Trails.Update)
	trails.DELETE("/:id", d.Trails.Delete)

	traffic := e.Group("/api/traffic")
	traffic.GET("", d.Traffic.GetAll, cache)
	traffic.GET("/stats", d.Traffic.GetStats, cache)
	traffic.GET("/refresh", d.Traffic.RefreshAll) // mutates; never cached
	traffic.GET("/:trailId", d.Traffic.GetByTrail)
	traffic.PUT("/:trailId", d.Traffic.Update)

	auth := e.Group("/api/auth")
	auth.POST("/register", d.Auth.Register)
	auth.POST("/login", d.Auth.Login)
	auth.GET("/me", d.Auth.Me, protect)
	auth.POST("/forgot-password", d.Auth.ForgotPassword)
	auth.POST("/reset-password", d.Auth.ResetPassword)

	users := e.Group("/api/users", protect)
	users.GET("/profile", d.Users.GetProfile)
	users.PUT("/profile", d.Users.UpdateProfile)
	users.GET("/favorites", d.Users.GetFavorites)
	users.POST("/favorites/:trailId", d.Users.AddFavorite)
	users.DELETE("/favorites/:trailId", d.Users.RemoveFavorite)
	users.GET("/favorites/:trailId", d.Users.CheckFavorite)
}

// errorHandler maps uncaught errors onto the standard envelope. Unknown
// routes get a descriptive 404; everything else becomes a 500 whose
// message is suppressed outside dev.
func errorHandler(cfg config.Config) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if he, ok := err.(*echo.HTTPError); ok {
			if he.Code == http.StatusNotFound {
				_ = c.JSON(http.StatusNotFound, echo.Map{
					"success": false,
					"message": fmt.Sprintf("Route %s %s not found", c.Request().Method, c.Request().URL.Path),
				})
				return
			}
			_ = c.JSON(he.Code, echo.Map{
				"success": false,
				"message": fmt.Sprint(he.Message),
			})
			return
		}
		c.Logger().Error(err)
		msg := "Internal server error"
		if cfg.Env == "dev" {
			msg = err.Error()
		}
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": msg})
	}
}
