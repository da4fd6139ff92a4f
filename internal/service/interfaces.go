// Package service 定义业务层接口
// 本文件定义所有 Service 接口，供 Handler 层与 WebSocket 调度器调用
// 接口设计遵循依赖倒置原则，便于测试和解耦
package service

import (
	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/dto/respond"
	"chatlog_server/internal/service/relationship"
)

// AuthService 认证业务接口
// 处理注册、登录、令牌刷新与注销
type AuthService interface {
	// Register 用户注册，成功后直接下发双 Token
	Register(req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login 密码登录
	Login(req request.LoginRequest) (*respond.LoginRespond, error)
	// RefreshToken 用 Refresh Token 换取新的双 Token（旋转 TokenID）
	RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error)
	// Logout 注销，使当前 Refresh Token 失效
	Logout(userId string) error
	// ValidateTokenID 校验 Refresh Token 的 TokenID 是否仍然有效（单点互踢）
	ValidateTokenID(userId, tokenID string) (bool, error)
}

// UserService 用户业务接口
type UserService interface {
	// GetUserInfo 获取单个用户信息
	GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error)
	// GetUserList 获取用户列表（排除自己）
	GetUserList(ownerId string) ([]respond.GetUserListRespond, error)
	// UpdateUserInfo 更新用户资料
	UpdateUserInfo(uuid string, req request.UpdateUserInfoRequest) error
	// GetOnlineUsers 获取当前在线用户 UUID 列表
	GetOnlineUsers() ([]string, error)
}

// MessageService 消息业务接口
// 处理历史消息查询，实时转发由 chat 包的 MessageRelay 负责
type MessageService interface {
	// GetMessageList 获取两个用户之间的聊天记录（带缓存）
	GetMessageList(ownerId, peerId string) ([]respond.GetMessageListRespond, error)
	// GetChatPartners 获取有过消息往来的用户列表
	GetChatPartners(ownerId string) ([]respond.GetUserListRespond, error)
}

// RelationshipService 好友关系业务接口
// 状态机操作返回 Outcome，由调用方（WebSocket 调度器或 Handler）
// 映射为对应的推送事件或 HTTP 响应
type RelationshipService interface {
	// SendRequest 发起好友申请
	SendRequest(actorId, targetId string) *relationship.Outcome
	// AcceptRequest 接受好友申请
	AcceptRequest(actorId, requesterId string) *relationship.Outcome
	// Unfriend 解除好友关系
	Unfriend(actorId, peerId string) *relationship.Outcome
	// CancelRequest 撤回自己发出的申请
	CancelRequest(actorId, targetId string) error
	// DeclineRequest 拒绝收到的申请
	DeclineRequest(actorId, requesterId string) error
	// ListSets 获取 friends/incoming/outgoing 三个投影集合
	ListSets(ownerId string) (*respond.FriendSetsRespond, error)
	// RelationOf 探测与某个用户之间的关系
	RelationOf(ownerId, peerId string) (*respond.RelationRespond, error)
	// IsFriend 判断两个用户是否为好友（消息转发前的服务端校验）
	IsFriend(userId, peerId string) (bool, error)
}
