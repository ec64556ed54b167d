// internal/handlers/admin/admin_handler.go
package admin

import (
	"net/http"

	"gateway-auth-service/internal/domain/identity"
	"gateway-auth-service/internal/pkg/response"
	authService "gateway-auth-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service *authService.Service
	logger  *zap.Logger
}

func NewAdminHandler(service *authService.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger,
	}
}

// ListUsers returns every identity (admin only).
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "users", users)
}

// ChangeRole assigns a role from the closed set (admin only).
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	var req identity.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	id := c.Param("id")
	if err := h.service.ChangeRole(c.Request.Context(), id, &req); err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("role updated by admin",
		zap.String("identity_id", id),
		zap.String("role", req.Role),
	)
	response.Success(c, http.StatusOK, "role updated", nil)
}
