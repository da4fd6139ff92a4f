// Package handler 提供 HTTP 请求处理器
// 本文件处理好友关系的请求/响应面
// 申请与接受走 WebSocket 事件，撤回/拒绝与各类查询走这里
package handler

import (
	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/service"
	"chatlog_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// GetFriendSetsHandler 获取 friends/incoming/outgoing 三个集合
// GET /friend/sets
// 响应: respond.FriendSetsRespond
func GetFriendSetsHandler(c *gin.Context) {
	ownerId := c.GetString("user_id")
	data, err := service.Svc.Relationship.ListSets(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetRelationHandler 探测与某个用户之间的关系
// GET /friend/relation?peer_id=xxx
// 响应: respond.RelationRespond
func GetRelationHandler(c *gin.Context) {
	peerId := c.Query("peer_id")
	if peerId == "" {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "peer_id 不能为空"))
		return
	}
	ownerId := c.GetString("user_id")
	data, err := service.Svc.Relationship.RelationOf(ownerId, peerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// CancelFriendRequestHandler 撤回自己发出的申请
// POST /friend/cancelRequest
// 请求体: request.CancelFriendRequestRequest
func CancelFriendRequestHandler(c *gin.Context) {
	var req request.CancelFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	actorId := c.GetString("user_id")
	if err := service.Svc.Relationship.CancelRequest(actorId, req.TargetId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// DeclineFriendRequestHandler 拒绝收到的申请
// POST /friend/declineRequest
// 请求体: request.DeclineFriendRequestRequest
func DeclineFriendRequestHandler(c *gin.Context) {
	var req request.DeclineFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	actorId := c.GetString("user_id")
	if err := service.Svc.Relationship.DeclineRequest(actorId, req.RequesterId); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
