// Package handler 提供 HTTP 请求处理器
// 本文件处理注册、登录、令牌刷新与注销
package handler

import (
	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterHandler 用户注册
// POST /auth/register
// 请求体: request.RegisterRequest
// 响应: respond.RegisterRespond
func RegisterHandler(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Auth.Register(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LoginHandler 密码登录
// POST /auth/login
// 请求体: request.LoginRequest
// 响应: respond.LoginRespond
func LoginHandler(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Auth.Login(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// RefreshTokenHandler 刷新双 Token
// POST /auth/refresh
// 请求体: request.RefreshTokenRequest
// 响应: respond.RefreshTokenRespond
func RefreshTokenHandler(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	data, err := service.Svc.Auth.RefreshToken(req)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// LogoutHandler 注销当前用户
// POST /auth/logout（需要认证）
func LogoutHandler(c *gin.Context) {
	userId := c.GetString("user_id")
	if err := service.Svc.Auth.Logout(userId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
