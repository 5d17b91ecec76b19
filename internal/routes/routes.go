// Package routes wires handlers and middleware onto the gin engine.
package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/yukikurage/todo-tracker/docs"
	"github.com/yukikurage/todo-tracker/internal/handlers"
	"github.com/yukikurage/todo-tracker/internal/i18n"
	"github.com/yukikurage/todo-tracker/internal/metrics"
	"github.com/yukikurage/todo-tracker/internal/middleware"
	"github.com/yukikurage/todo-tracker/internal/models"
	"github.com/yukikurage/todo-tracker/internal/services"
)

// Services groups everything the routes need from the service layer.
type Services struct {
	Catalog   *i18n.Catalog
	Auth      *services.AuthService
	Tasks     *services.TaskService
	Users     *services.UserService
	Roles     *services.RoleService
	Settings  *services.SettingsService
	Suggester *services.TodoSuggester
}

// Options configures the cross-cutting middleware.
type Options struct {
	AllowedOrigins []string
	LoginLimiter   *middleware.LoginLimiter
	Health         *handlers.HealthHandler
}

// Setup registers every route on router. Sessions must already be installed.
func Setup(router *gin.Engine, svc Services, opts Options) {
	authHandler := handlers.NewAuthHandler(svc.Auth)
	taskHandler := handlers.NewTaskHandler(svc.Tasks, svc.Suggester)
	optionHandler := handlers.NewOptionHandler(svc.Settings)
	userHandler := handlers.NewUserHandler(svc.Users)
	roleHandler := handlers.NewRoleHandler(svc.Roles)
	webHandler := handlers.NewWebHandler(svc.Catalog, svc.Auth, svc.Tasks, svc.Users, svc.Roles, svc.Settings)

	router.Use(middleware.RequestID())
	router.Use(metrics.Middleware())
	router.Use(middleware.LoadUser(svc.Auth))
	router.Use(middleware.Preferences(svc.Settings))

	if opts.Health != nil {
		router.GET("/health", opts.Health.Check)
	}
	router.GET("/metrics", metrics.Handler())

	// API routes
	api := router.Group("/api")
	{
		docs.SwaggerInfo.BasePath = api.BasePath()
		api.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", opts.LoginLimiter.Middleware(authHandler.TooManyAttempts), authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		todos := api.Group("/todos")
		todos.Use(middleware.RequireAuth())
		{
			collection(todos, taskHandler.ListTasks, taskHandler.CreateTask)
			todos.POST("/suggest", taskHandler.SuggestTasks)

			task := todos.Group("/:id", middleware.LoadTask(svc.Tasks))
			task.GET("", taskHandler.GetTask)
			task.PUT("", taskHandler.UpdateTask)
			task.DELETE("", taskHandler.DeleteTask)
			task.POST("/toggle", taskHandler.ToggleTask)
		}

		options := api.Group("/options")
		options.Use(middleware.RequireAuth())
		{
			collection(options, optionHandler.ListOptions, optionHandler.CreateOption)
			options.GET("/resolve", optionHandler.ResolveOption)
			options.GET("/:id", optionHandler.GetOption)
			options.PUT("/:id", optionHandler.UpdateOption)
			options.DELETE("/:id", optionHandler.DeleteOption)
		}

		users := api.Group("/users")
		users.Use(middleware.RequireAuth(), middleware.RequireCapability(models.CapabilityAdmin))
		{
			collection(users, userHandler.ListUsers, userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		roles := api.Group("/roles")
		roles.Use(middleware.RequireAuth(), middleware.RequireCapability(models.CapabilityAdmin))
		{
			collection(roles, roleHandler.ListRoles, roleHandler.CreateRole)
			roles.GET("/:id", roleHandler.GetRole)
			roles.PUT("/:id", roleHandler.UpdateRole)
			roles.DELETE("/:id", roleHandler.DeleteRole)
		}
	}

	// Rendered pages
	web := router.Group("/")
	web.Use(middleware.CSRF(middleware.CSRFConfig{AllowedOrigins: opts.AllowedOrigins}))
	{
		web.GET("/", webHandler.Home)
		web.GET("/login", webHandler.LoginPage)
		web.POST("/login", opts.LoginLimiter.Middleware(webHandler.TooManyAttempts), webHandler.Login)
		web.GET("/register", webHandler.RegisterPage)
		web.POST("/register", webHandler.Register)
		web.GET("/logout", webHandler.Logout)
		web.POST("/logout", webHandler.Logout)

		web.GET("/language/:lang", webHandler.SetLanguage)
		web.GET("/theme/:theme", webHandler.SetTheme)
		web.GET("/pagination/:per_page", webHandler.SetPagination)

		member := web.Group("/", middleware.RequireLogin(svc.Catalog))
		{
			member.GET("/dashboard", webHandler.Dashboard)
			member.GET("/todo/new", webHandler.NewTodoPage)
			member.POST("/todo/new", webHandler.CreateTodo)
			member.GET("/todo/:id/edit", webHandler.EditTodoPage)
			member.POST("/todo/:id/edit", webHandler.UpdateTodo)
			member.POST("/todo/:id/delete", webHandler.DeleteTodo)
			member.POST("/todo/:id/toggle", webHandler.ToggleTodo)
		}

		admin := member.Group("/", middleware.RequireWebCapability(svc.Catalog, models.CapabilityAdmin))
		{
			admin.GET("/admin/users", webHandler.ManageUsers)
			admin.GET("/admin/users/new", webHandler.NewUserPage)
			admin.POST("/admin/users/new", webHandler.CreateUser)
			admin.GET("/admin/users/:id/edit", webHandler.EditUserPage)
			admin.POST("/admin/users/:id/edit", webHandler.UpdateUser)
			admin.POST("/admin/users/:id/delete", webHandler.DeleteUser)

			admin.GET("/admin/roles", webHandler.ManageRoles)
			admin.GET("/admin/roles/new", webHandler.NewRolePage)
			admin.POST("/admin/roles/new", webHandler.CreateRole)
			admin.GET("/admin/roles/:id/edit", webHandler.EditRolePage)
			admin.POST("/admin/roles/:id/edit", webHandler.UpdateRole)
			admin.POST("/admin/roles/:id/delete", webHandler.DeleteRole)

			admin.GET("/options", webHandler.ViewOptions)
		}
	}
}

// collection registers list and create on both "/x" and "/x/".
func collection(group *gin.RouterGroup, list, create gin.HandlerFunc) {
	group.GET("", list)
	group.GET("/", list)
	group.POST("", create)
	group.POST("/", create)
}
