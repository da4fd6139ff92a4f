// Package service 提供业务逻辑层
// 本文件实现 Service 层的依赖注入和聚合
package service

import (
	"chatlog_server/internal/dao/mysql"
	myredis "chatlog_server/internal/dao/redis"
	"chatlog_server/internal/service/auth"
	"chatlog_server/internal/service/message"
	"chatlog_server/internal/service/relationship"
	"chatlog_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过 service.Svc 访问各个 Service
type Services struct {
	Auth         AuthService         // 认证 Service
	User         UserService         // 用户 Service
	Message      MessageService      // 消息 Service
	Relationship RelationshipService // 好友关系 Service
}

// NewServices 创建并注入所有 Service 实例
// 依赖注入流程：
//  1. 接收 Repository 聚合实例与缓存服务
//  2. 创建各个 Service 实例，注入依赖
//  3. 返回 Services 聚合
func NewServices(repos *mysql.Repositories, cache myredis.AsyncCacheService) *Services {
	authSvc := auth.NewAuthService(repos, cache)
	userSvc := user.NewUserService(repos, cache)
	messageSvc := message.NewMessageService(repos, cache)
	relationshipSvc := relationship.NewRelationshipService(repos, cache)

	return &Services{
		Auth:         authSvc,
		User:         userSvc,
		Message:      messageSvc,
		Relationship: relationshipSvc,
	}
}

// Svc 全局 Services 实例
// Handler 层通过 service.Svc.Auth.Login() 等方式调用
var Svc *Services

// InitServices 初始化全局 Services 实例
// 应在 main.go 中调用，在 Repository 与 Redis 初始化之后
func InitServices(repos *mysql.Repositories, cache myredis.AsyncCacheService) {
	Svc = NewServices(repos, cache)
}
