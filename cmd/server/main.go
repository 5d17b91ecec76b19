package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/yukikurage/todo-tracker/internal/config"
	"github.com/yukikurage/todo-tracker/internal/constants"
	"github.com/yukikurage/todo-tracker/internal/database"
	"github.com/yukikurage/todo-tracker/internal/handlers"
	"github.com/yukikurage/todo-tracker/internal/i18n"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/repository"
	"github.com/yukikurage/todo-tracker/internal/routes"
	"github.com/yukikurage/todo-tracker/internal/services"
	"github.com/yukikurage/todo-tracker/internal/views"
	"github.com/yukikurage/todo-tracker/pkg/redis"
)

// @title Todo Tracker API
// @version 1.0
// @description Todos, per-user preferences and account administration. Authenticate with POST /auth/login; the session cookie it sets authorizes every other call.
// @BasePath /api
func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations and seed the built-in roles
	if err := database.Setup(db); err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}

	catalog, err := i18n.NewCatalog(cfg.DefaultLanguage, cfg.SupportedLanguages)
	if err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	templates, err := views.Load(catalog)
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.SetHTMLTemplate(templates)

	// Redis backs sessions and the login limiter when configured
	var redisClient goredis.Cmdable
	var store sessions.Store
	if cfg.RedisEnabled() {
		client, err := redis.NewClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		redisClient = client

		// the session pool dials with the client's password and TLS settings
		pool := redis.NewSessionPool(cfg)
		defer pool.Close()
		store, err = redisStore.NewStoreWithPool(pool, []byte(cfg.SessionSecret))
		if err != nil {
			log.Fatalf("Failed to create Redis store: %v", err)
		}
	} else {
		log.Println("REDIS_HOST not set, using cookie sessions and no login rate limit")
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// Initialize AI service
	var suggester *services.TodoSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewTodoSuggester(cfg.OpenAIAPIKey)
	}

	routes.Setup(r, routes.Services{
		Catalog:   catalog,
		Auth:      services.NewAuthService(userRepo, roleRepo),
		Tasks:     services.NewTaskService(taskRepo),
		Users:     services.NewUserService(userRepo, roleRepo),
		Roles:     services.NewRoleService(roleRepo),
		Settings:  services.NewSettingsService(settingRepo, catalog),
		Suggester: suggester,
	}, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		LoginLimiter:   middleware.NewLoginLimiter(redisClient, cfg.LoginRateLimit, cfg.LoginRateWindow),
		Health:         handlers.NewHealthHandler(db, redisClient),
	})

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
