// Package handler 提供 HTTP 请求处理器
// 本文件处理用户资料相关的 API 请求
package handler

import (
	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/service"

	"github.com/gin-gonic/gin"
)

// GetUserInfoHandler 获取用户信息
// GET /user/info?uuid=xxx（缺省为当前用户）
// 响应: respond.GetUserInfoRespond
func GetUserInfoHandler(c *gin.Context) {
	uuid := c.Query("uuid")
	if uuid == "" {
		uuid = c.GetString("user_id")
	}
	data, err := service.Svc.User.GetUserInfo(uuid)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// GetUserListHandler 获取用户列表（排除自己）
// GET /user/list
// 响应: []respond.GetUserListRespond
func GetUserListHandler(c *gin.Context) {
	ownerId := c.GetString("user_id")
	data, err := service.Svc.User.GetUserList(ownerId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}

// UpdateUserInfoHandler 更新当前用户资料
// POST /user/update
// 请求体: request.UpdateUserInfoRequest
func UpdateUserInfoHandler(c *gin.Context) {
	var req request.UpdateUserInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleParamError(c, err)
		return
	}
	userId := c.GetString("user_id")
	if err := service.Svc.User.UpdateUserInfo(userId, req); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}

// GetOnlineUsersHandler 获取在线用户 UUID 列表
// GET /user/online
// 响应: []string
func GetOnlineUsersHandler(c *gin.Context) {
	data, err := service.Svc.User.GetOnlineUsers()
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, data)
}
