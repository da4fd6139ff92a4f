// Package router 提供 HTTP 路由注册
// 本文件定义认证相关的路由
package router

import (
	"chatlog_server/internal/handler"
	"chatlog_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes 注册认证相关路由
func RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		// 公开接口 (无需认证)
		authGroup.POST("/register", handler.RegisterHandler)
		authGroup.POST("/login", handler.LoginHandler)
		// POST /auth/refresh - 使用 Refresh Token 换取新的双 Token
		authGroup.POST("/refresh", handler.RefreshTokenHandler)

		// 注销需要认证
		authGroup.POST("/logout", middleware.JWTAuth(), handler.LogoutHandler)
	}
}
