// internal/app/router.go
package app

import (
	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/guard"
	adminHandler "gateway-auth-service/internal/handlers/admin"
	authHandler "gateway-auth-service/internal/handlers/auth"
	pagesHandler "gateway-auth-service/internal/handlers/pages"
	"gateway-auth-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	AdminHandler   *adminHandler.AdminHandler
	PagesHandler   *pagesHandler.PagesHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== Auth ====================
	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.AuthHandler.SignUp)
		auth.POST("/login", h.AuthHandler.Login)
		auth.POST("/logout", h.AuthHandler.Logout)
		auth.POST("/verify-email", h.AuthHandler.VerifyEmail)

		auth.GET("/google", h.AuthHandler.GoogleLogin)
		auth.GET("/google/callback", h.AuthHandler.GoogleCallback)

		auth.GET("/session", h.AuthMiddleware.RequireAuth(), h.AuthHandler.Session)
		auth.GET("/accounts", h.AuthMiddleware.RequireAuth(), h.AuthHandler.Accounts)
		auth.POST("/password", h.AuthMiddleware.RequireAuth(), h.AuthHandler.ChangePassword)
		auth.POST("/verify-email/resend", h.AuthMiddleware.RequireAuth(), h.AuthHandler.ResendVerification)
	}

	// ==================== Admin API ====================
	adminAPI := api.Group("/admin", h.AuthMiddleware.RequireRoleAPI(identity.RoleAdmin))
	{
		adminAPI.GET("/users", h.AdminHandler.ListUsers)
		adminAPI.PATCH("/users/:id/role", h.AdminHandler.ChangeRole)
	}

	// ==================== Pages ====================
	// Guard redirect destinations stay reachable without a session.
	r.GET(guard.LoginPath, h.PagesHandler.Login)
	r.GET(guard.UnauthorizedPath, h.PagesHandler.Unauthorized)
	r.GET(guard.VerifyEmailPath, h.PagesHandler.VerifyEmail)

	r.GET("/", middleware.OptionalAuthenticatedPage(), h.PagesHandler.Home)
	r.GET("/dashboard", middleware.RequireAuthenticatedPage(), h.PagesHandler.Dashboard)
	r.GET("/models", middleware.RequireVerifiedEmailPage(), h.PagesHandler.Models)
	r.GET("/usage", middleware.RequireRolePage(identity.RoleViewer, identity.RoleAdmin), h.PagesHandler.Usage)
	r.GET("/admin", middleware.RequireRolePage(identity.RoleAdmin), h.PagesHandler.AdminConsole)
}
