package router

import (
	"chatlog_server/internal/handler"
	"chatlog_server/internal/infrastructure/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterFriendRoutes 注册好友关系相关路由
// 申请与接受走 WebSocket 事件，这里只有撤回/拒绝与查询
func RegisterFriendRoutes(r *gin.Engine) {
	friendGroup := r.Group("/friend")
	friendGroup.Use(middleware.JWTAuth())
	{
		friendGroup.GET("/sets", handler.GetFriendSetsHandler)
		friendGroup.GET("/relation", handler.GetRelationHandler)
		friendGroup.POST("/cancelRequest", handler.CancelFriendRequestHandler)
		friendGroup.POST("/declineRequest", handler.DeclineFriendRequestHandler)
	}
}
