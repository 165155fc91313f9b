package routes

import (
	"github.com/gin-gonic/gin"

	"jobmarket/internal/authz"
	"jobmarket/internal/handlers"
	"jobmarket/internal/middleware"
	"jobmarket/internal/token"
)

func SetupRoutes(
	r *gin.Engine,
	codec *token.Codec,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	jobHandler *handlers.JobHandler,
	applicationHandler *handlers.ApplicationHandler,
	reportHandler *handlers.ReportHandler,
) *gin.Engine {

	// ---- public
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)
	r.POST("/auth/password-reset/request", authHandler.RequestPasswordReset)
	r.POST("/auth/password-reset/confirm", authHandler.ConfirmPasswordReset)

	// job browsing is open; everything that writes is behind auth
	r.GET("/jobs", jobHandler.List)
	r.GET("/jobs/:id", jobHandler.GetByID)

	// ---- protected
	r.Use(middleware.Auth(codec))

	r.GET("/auth/me", authHandler.Me)

	// USERS
	users := r.Group("/users")
	{
		users.GET("/", middleware.RequireRoles(authz.RoleAdmin), userHandler.List)
		users.GET("/:id", userHandler.GetByID)
		users.PUT("/:id", userHandler.Update)
		users.DELETE("/:id", middleware.RequireRoles(authz.RoleAdmin), userHandler.Delete)
	}

	// JOBS
	jobs := r.Group("/jobs")
	{
		jobs.GET("/my", middleware.RequireRoles(authz.RoleEmployer, authz.RoleAdmin), jobHandler.My)
		jobs.POST("/", middleware.RequireRoles(authz.RoleEmployer, authz.RoleAdmin), jobHandler.Create)
		jobs.PUT("/:id", middleware.RequireRoles(authz.RoleEmployer, authz.RoleAdmin), jobHandler.Update)
		jobs.DELETE("/:id", middleware.RequireRoles(authz.RoleEmployer, authz.RoleAdmin), jobHandler.Delete)
	}

	// APPLICATIONS
	applications := r.Group("/applications")
	{
		applications.POST("/", middleware.RequireRoles(authz.RoleStudent), applicationHandler.Create)
		applications.GET("/", applicationHandler.List)
		applications.GET("/:id", applicationHandler.GetByID)
		applications.GET("/:id/pdf", applicationHandler.DownloadPDF)
		applications.PUT("/:id", applicationHandler.Update)
		applications.DELETE("/:id", applicationHandler.Delete)
	}

	// REPORTS (admin)
	reports := r.Group("/reports", middleware.RequireRoles(authz.RoleAdmin))
	{
		reports.GET("/summary", reportHandler.Summary)
	}

	return r
}
