package app

import (
	"github.com/smowhabuth/SKBday/internal/auth"
	"github.com/smowhabuth/SKBday/internal/cache"
	"github.com/smowhabuth/SKBday/internal/config"
	"github.com/smowhabuth/SKBday/internal/handlers"
	"github.com/smowhabuth/SKBday/internal/repo"
	"github.com/smowhabuth/SKBday/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	sessionStore := auth.NewStore(rdb, 0, cfg.App.SessionSecret)
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)

	commentRepo := repo.NewPGCommentRepo(db)
	commentCache := cache.NewCommentCache(rdb, cfg.Redis.DefaultTTL.Duration())
	commentSvc := service.NewCommentService(commentRepo, commentCache)

	pages := handlers.NewPageHandler(sessionStore, userSvc, commentSvc)
	admin := handlers.NewAdminHandler(userSvc, cfg.App.BaseURL)

	RegisterRoutes(r, sessionStore, userRepo, pages, admin)
}

// RegisterRoutes attaches middleware and routes. Split from Setup so tests
// can wire fake stores behind the same route table.
func RegisterRoutes(r *gin.Engine, sessions *auth.Store, users auth.UserFinder, pages *handlers.PageHandler, admin *handlers.AdminHandler) {
	// Session rehydration runs once for every request; protected routes
	// layer their gate on top.
	r.Use(auth.LoadUser(sessions, users))

	r.GET("/", pages.Root)
	r.GET("/login", pages.LoginPage)
	r.POST("/login", pages.Login)
	r.GET("/day/:dayNumber", auth.RequirePage(), pages.Day)
	r.POST("/comment", auth.RequireAction(), pages.PostComment)

	// Provisioning and diagnostics. Deliberately ungated, matching the
	// app's original surface.
	r.GET("/generate-codes", admin.GenerateCodes)
	r.GET("/admin/users", admin.AdminUsers)
	r.POST("/admin/add-user", admin.AddUser)
	r.GET("/debug/users", admin.DebugUsers)
	r.GET("/generate-qr/:code", admin.GenerateQR)
}
