package router

import (
	"log/slog"
	"mongoplay/internal/playground/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, h *handler.PlaygroundHandler, gatherer prometheus.Gatherer, logger *slog.Logger) {
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.PATCH, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Health Check
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := e.Group("/api/v1")
	v1.Use(handler.RequestIDMiddleware)
	v1.Use(handler.MetricsMiddleware(logger))

	// Documents
	v1.POST("/users", h.PostUser)
	v1.POST("/users/seed", h.PostSeedUsers)
	v1.POST("/users/bulk/archive", h.PostBulkArchive, h.RequireDestructive)
	v1.GET("/users", h.GetUsers)
	v1.GET("/users/search", h.GetUsersSearch)
	v1.GET("/users/count", h.GetUsersCount)
	v1.GET("/users/:name", h.GetUser)
	v1.PATCH("/users/:name", h.PatchUser)
	v1.PUT("/users/:name", h.PutUser, h.RequireDestructive)
	v1.DELETE("/users/:name", h.DeleteUser)
	v1.DELETE("/users", h.DeleteUsers)

	// Aggregations
	v1.GET("/stats/age", h.GetAgeStats)
	v1.GET("/stats/top", h.GetTopActive)
	v1.GET("/stats/departments", h.GetDepartmentStats)

	// Indexes
	v1.GET("/indexes", h.GetIndexes)
	v1.POST("/indexes", h.PostEnsureIndexes)
	v1.GET("/indexes/stats", h.GetIndexStats)
	v1.GET("/indexes/explain", h.GetExplain)
	v1.DELETE("/indexes/:name", h.DeleteIndex, h.RequireDestructive)

	// Administration
	v1.GET("/admin/stats", h.GetDatabaseStats)
	v1.GET("/admin/collections", h.GetCollections)
	v1.GET("/admin/collections/:name/stats", h.GetCollectionStats)
	v1.GET("/admin/collections/:name/validate", h.GetValidateCollection)
	v1.GET("/admin/users", h.GetDBUsers)
	v1.POST("/admin/users", h.PostDBUser, h.RequireDestructive)
	v1.DELETE("/admin/users/:user", h.DeleteDBUser, h.RequireDestructive)
	v1.GET("/admin/profiling", h.GetProfiling)
	v1.PUT("/admin/profiling", h.PutProfiling, h.RequireDestructive)
	v1.GET("/admin/profiling/entries", h.GetProfileEntries)
	v1.GET("/admin/current-op", h.GetCurrentOp)
	v1.GET("/admin/server-status", h.GetServerStatus)
	v1.GET("/admin/version", h.GetServerVersion)

	// Playground runner
	v1.GET("/playground/sections", h.GetSections)
	v1.POST("/playground/run", h.PostRun)
}
