package router

import (
	"chatlog_server/internal/handler"
	"chatlog_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes 注册 WebSocket 相关路由
// 浏览器的 WebSocket API 无法自定义请求头，
// JWT 中间件支持从 ?token= 查询参数取 Access Token
func RegisterWebSocketRoutes(r *gin.Engine) {
	wsGroup := r.Group("/ws")
	wsGroup.Use(middleware.JWTAuth())
	{
		wsGroup.GET("/connect", handler.WsConnectHandler)
	}
}
