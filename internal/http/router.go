package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"adminconsole/internal/config"
	"adminconsole/internal/http/handlers"
	"adminconsole/internal/http/middleware"
)

// NewRouter wires middleware and routes into a gin engine ready to serve.
func NewRouter(env config.Env) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	middleware.SetSessionSecret(env.SessionSecret)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Authenticate())

	r.GET("/health", handlers.Health)
	r.GET("/health/db", handlers.DBCheck)

	auth := r.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/register", handlers.Register)
		auth.POST("/logout", handlers.Logout)
		auth.GET("/status", handlers.Status)
	}

	app := r.Group("/app", middleware.RequireAuth())
	{
		contacts := app.Group("/contacts")
		{
			contacts.GET("", handlers.ListContacts)
			contacts.GET("/:id", handlers.GetContact)
			contacts.POST("", handlers.CreateContact)
			contacts.PATCH("/:id", handlers.UpdateContact)
			contacts.DELETE("/:id", handlers.DeleteContact)
		}

		users := app.Group("/users", middleware.RequirePermission("user.read.all"))
		{
			users.GET("", handlers.ListUsers)
			users.GET("/:id", handlers.GetUser)
			users.PATCH("/:id", middleware.RequirePermission("user.manage"), handlers.AssignUserRoles)
		}

		roles := app.Group("/roles", middleware.RequirePermission("role.read.all"))
		{
			roles.GET("", handlers.ListRoles)
			roles.GET("/:id", handlers.GetRole)
			manage := middleware.RequirePermission("role.manage")
			roles.POST("", manage, handlers.CreateRole)
			roles.PATCH("/:id", manage, handlers.UpdateRole)
			roles.DELETE("/:id", manage, handlers.DeleteRole)
		}

		permissions := app.Group("/permissions", middleware.RequirePermission("permission.read.all"))
		{
			permissions.GET("", handlers.ListPermissions)
			permissions.GET("/:id", handlers.GetPermission)
			manage := middleware.RequirePermission("permission.manage")
			permissions.POST("", manage, handlers.CreatePermission)
			permissions.PATCH("/:id", manage, handlers.UpdatePermission)
			permissions.DELETE("/:id", manage, handlers.DeletePermission)
		}

		categories := app.Group("/categories", middleware.RequirePermission("category.read.all"))
		{
			categories.GET("", handlers.ListCategories)
			categories.GET("/:id", handlers.GetCategory)
			manage := middleware.RequirePermission("category.manage")
			categories.POST("", manage, handlers.CreateCategory)
			categories.PATCH("/:id", manage, handlers.UpdateCategory)
			categories.DELETE("/:id", manage, handlers.DeleteCategory)
		}

		auditLogs := app.Group("/audit-logs", middleware.RequirePermission("audit.read.all"))
		{
			auditLogs.GET("", handlers.ListAuditLogs)
			auditLogs.GET("/export", handlers.ExportAuditLogs)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})

	return r
}
