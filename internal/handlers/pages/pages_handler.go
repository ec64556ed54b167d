// internal/handlers/pages/pages_handler.go

// Package pages serves the role-gated destinations of the gateway console.
// Rendering is out of scope; each page returns the data a frontend would
// need, behind the guards the route demands.
package pages

import (
	"net/http"

	"gateway-auth-service/internal/middleware"
	"gateway-auth-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Home renders either way; signed-in visitors get their session context.
func (h *PagesHandler) Home(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Success(c, http.StatusOK, "welcome", gin.H{"authenticated": false})
		return
	}
	response.Success(c, http.StatusOK, "welcome", gin.H{
		"authenticated": true,
		"name":          claims.Name,
		"role":          claims.Role,
		"verified":      claims.IsVerified(),
	})
}

// Dashboard is the authenticated landing page.
func (h *PagesHandler) Dashboard(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)
	response.Success(c, http.StatusOK, "dashboard", gin.H{
		"id":   claims.UserID(),
		"name": claims.Name,
		"role": claims.Role,
	})
}

// Models lists the gateway's upstream models; verified accounts only.
func (h *PagesHandler) Models(c *gin.Context) {
	response.Success(c, http.StatusOK, "models", gin.H{
		"models": []string{"gpt-4o", "claude-sonnet", "llama-3"},
	})
}

// Usage is readable by viewers and admins.
func (h *PagesHandler) Usage(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)
	response.Success(c, http.StatusOK, "usage", gin.H{
		"viewer": claims.UserID(),
	})
}

// AdminConsole is the admin-only page.
func (h *PagesHandler) AdminConsole(c *gin.Context) {
	response.Success(c, http.StatusOK, "admin console", nil)
}

// Login is the sign-in destination guards redirect to.
func (h *PagesHandler) Login(c *gin.Context) {
	response.Success(c, http.StatusOK, "please sign in", nil)
}

// Unauthorized is the wrong-role destination.
func (h *PagesHandler) Unauthorized(c *gin.Context) {
	response.Error(c, http.StatusForbidden, "you do not have access to this page", nil)
}

// VerifyEmail is the unverified-email destination.
func (h *PagesHandler) VerifyEmail(c *gin.Context) {
	response.Success(c, http.StatusOK, "please verify your email address", nil)
}
