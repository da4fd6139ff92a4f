package router

import (
	"chatlog_server/internal/handler"
	"chatlog_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes 注册用户相关路由
func RegisterUserRoutes(r *gin.Engine) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.JWTAuth())
	{
		userGroup.GET("/info", handler.GetUserInfoHandler)
		userGroup.GET("/list", handler.GetUserListHandler)
		userGroup.GET("/online", handler.GetOnlineUsersHandler)
		userGroup.POST("/update", handler.UpdateUserInfoHandler)
	}
}
