package router

import (
	"chatlog_server/internal/handler"
	"chatlog_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterMessageRoutes 注册消息相关路由
func RegisterMessageRoutes(r *gin.Engine) {
	messageGroup := r.Group("/message")
	messageGroup.Use(middleware.JWTAuth())
	{
		messageGroup.GET("/list", handler.GetMessageListHandler)
		messageGroup.GET("/partners", handler.GetChatPartnersHandler)
	}
}
