// Package handler 提供 HTTP 请求处理器
// 本文件处理历史消息查询
package handler

import (
	"chatlog_server/internal/service"
	"chatlog_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// GetMessageListHandler 获取与某个用户的聊天记录
// GET /message/list?peer_id=xxx
// 响应: []respond.GetMessageListRespond
func GetMessageListHandler(c *gin.Context) {
	peerId := c.Query("peer_id")
	if peerId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "peer_id 不能为空"))
		return
	}
	ownerId := c.GetString("user_id")
	data, err := service.Svc.Message.GetMessageList(ownerId, peerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetChatPartnersHandler 获取有过消息往来的用户列表
// GET /message/partners
// 响应: []respond.GetUserListRespond
func GetChatPartnersHandler(c *gin.Context) {
	ownerId := c.GetString("user_id")
	data, err := service.Svc.Message.GetChatPartners(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
