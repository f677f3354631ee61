package handler

import (
	"ojt-tracker/internal/middleware"
	"ojt-tracker/internal/observability"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Logs    *LogHandler
	Week    *WeekHandler
	Journal *JournalHandler
	Files   *FileHandler
	Diag    *DiagHandler
}

// NewRouter wires routes and middleware. Everything under /api except
// register/login requires a valid bearer token.
func NewRouter(h Handlers, jwtSecret []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), observability.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/metrics", observability.Handler())
	r.POST("/api/auth/register", h.Auth.Register)
	r.POST("/api/auth/login", h.Auth.Login)

	api := r.Group("/api", middleware.JWTAuth(jwtSecret))
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me)
	api.PUT("/auth/password", h.Auth.UpdatePassword)

	api.GET("/profile", h.Auth.GetProfile)
	api.PUT("/profile", h.Auth.UpdateProfile)

	api.POST("/logs", h.Logs.Submit)
	api.GET("/logs", h.Logs.List)
	api.GET("/logs/total", h.Logs.Total)
	api.GET("/logs/export", h.Logs.Export)
	api.DELETE("/logs/:id", h.Logs.Delete)

	api.GET("/week", h.Week.Get)
	api.POST("/week/summary", h.Week.GenerateSummary)

	api.PUT("/journals", h.Week.SaveJournal)
	api.GET("/journals", h.Journal.List)
	api.DELETE("/journals/:id", h.Journal.Delete)

	api.POST("/files", h.Files.Upload)
	api.GET("/files/:name", h.Files.Download)

	api.GET("/diagnostics", h.Diag.Check)

	return r
}
