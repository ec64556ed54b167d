// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/middleware"
	"gateway-auth-service/internal/oauth"
	"gateway-auth-service/internal/pkg/response"
	authService "gateway-auth-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service *authService.Service
	logger  *zap.Logger
}

func NewAuthHandler(service *authService.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// SignUp handles account creation (public endpoint).
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req identity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	ident, err := h.service.SignUp(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		h.logger.Warn("signup rejected", zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "account created", ident.Info())
}

// Login handles credential login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	loginResp, err := h.service.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		h.logger.Warn("login rejected", zap.String("ip", c.ClientIP()), zap.Error(err))
		response.FromError(c, err)
		return
	}

	h.setSessionCookie(c, loginResp.Token)

	h.logger.Info("user logged in", zap.String("identity_id", loginResp.User.ID))
	response.Success(c, http.StatusOK, "login successful", loginResp)
}

// Logout clears the session cookie. Tokens are stateless: the server keeps
// no registry to revoke, the client simply stops presenting the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", true, true)
	response.Success(c, http.StatusOK, "logged out", nil)
}

// Session returns the request-scoped claims (requires auth).
func (h *AuthHandler) Session(c *gin.Context) {
	claims := middleware.MustClaims(c)
	response.Success(c, http.StatusOK, "session", gin.H{
		"id":             claims.UserID(),
		"email":          claims.Email,
		"name":           claims.Name,
		"role":           claims.Role,
		"email_verified": claims.EmailVerified,
		"expires_at":     claims.ExpiresAt.Time,
	})
}

// Accounts lists the caller's external provider links (requires auth).
func (h *AuthHandler) Accounts(c *gin.Context) {
	claims := middleware.MustClaims(c)

	accounts, err := h.service.LinkedAccounts(c.Request.Context(), claims.UserID())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "linked accounts", accounts)
}

// ChangePassword rotates the credential hash (requires auth).
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := middleware.MustClaims(c)

	var req identity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), claims.UserID(), &req); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "password changed", nil)
}

// VerifyEmail consumes a verification token. A signed-in caller gets back a
// refreshed session token carrying the new verification status.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req identity.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	claims, _ := middleware.ClaimsFrom(c)
	refreshed, err := h.service.VerifyEmail(c.Request.Context(), req.Token, claims)
	if err != nil {
		response.FromError(c, err)
		return
	}

	data := gin.H{}
	if refreshed != "" {
		h.setSessionCookie(c, refreshed)
		data["token"] = refreshed
	}
	response.Success(c, http.StatusOK, "email verified", data)
}

// ResendVerification issues a fresh verification token (requires auth).
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	claims := middleware.MustClaims(c)

	if err := h.service.ResendVerification(c.Request.Context(), claims.UserID()); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "verification email queued", nil)
}

// GoogleLogin redirects the browser to the Google consent screen.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	url, err := h.service.LoginURL(c.Request.Context(), oauth.ProviderGoogle)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}

// GoogleCallback completes the Google flow and issues a session.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")

	loginResp, err := h.service.HandleCallback(c.Request.Context(), oauth.ProviderGoogle, state, code)
	if err != nil {
		h.logger.Warn("oauth callback rejected", zap.Error(err))
		response.FromError(c, err)
		return
	}

	h.setSessionCookie(c, loginResp.Token)
	response.Success(c, http.StatusOK, "login successful", loginResp)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, tok string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, tok, int(h.service.SessionTTL().Seconds()), "/", "", true, true)
}
