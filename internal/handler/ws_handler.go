// Package handler 提供 HTTP 请求处理器
// 本文件处理 WebSocket 连接相关的 API 请求
package handler

import (
	"chatlog_server/internal/service/chat"
	"chatlog_server/pkg/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// chatServer 全局聊天服务器实例，由 main 注入
var chatServer *chat.ChatServer

// InitChatServer 注入聊天服务器实例
// 应在 main.go 中调用，在路由注册之前
func InitChatServer(cs *chat.ChatServer) {
	chatServer = cs
}

// WsConnectHandler 建立 WebSocket 连接
// GET /ws/connect?token=xxx（需要认证）
// 身份取自 JWT 中间件写入的 user_id，连接不自报身份
func WsConnectHandler(c *gin.Context) {
	clientId := c.GetString("user_id")
	if clientId == "" {
		zap.L().Error("clientId获取失败")
		HandleError(c, errorx.New(errorx.CodeUnauthorized, "认证信息缺失"))
		return
	}
	if err := chatServer.HandleConnection(c, clientId); err != nil {
		zap.L().Error("ws连接建立失败", zap.Error(err))
	}
}
