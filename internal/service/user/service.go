// Package user 提供用户资料相关的业务逻辑
package user

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"chatlog_server/internal/dao/mysql"
	myredis "chatlog_server/internal/dao/redis"
	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/dto/respond"
	"chatlog_server/pkg/constants"
	"chatlog_server/pkg/errorx"
)

// userInfoService 用户业务逻辑实现
// 通过构造函数注入 Repository 依赖
type userInfoService struct {
	repos *mysql.Repositories
	cache myredis.CacheService
}

// NewUserService 构造函数，注入所有依赖
func NewUserService(repos *mysql.Repositories, cache myredis.CacheService) *userInfoService {
	return &userInfoService{repos: repos, cache: cache}
}

// GetUserInfo 获取单个用户信息
func (u *userInfoService) GetUserInfo(uuid string) (*respond.GetUserInfoRespond, error) {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := &respond.GetUserInfoRespond{
		Uuid:      user.Uuid,
		Username:  user.Username,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		Signature: user.Signature,
		Status:    user.Status,
	}
	year, month, day := user.CreatedAt.Date()
	rsp.CreatedAt = fmt.Sprintf("%d.%d.%d", year, month, day)
	return rsp, nil
}

// GetUserList 获取用户列表（排除自己）
func (u *userInfoService) GetUserList(ownerId string) ([]respond.GetUserListRespond, error) {
	users, err := u.repos.User.FindAllExcept(ownerId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.GetUserListRespond, 0, len(users))
	for _, user := range users {
		rsp = append(rsp, respond.GetUserListRespond{
			Uuid:      user.Uuid,
			Username:  user.Username,
			Nickname:  user.Nickname,
			Avatar:    user.Avatar,
			Signature: user.Signature,
			Status:    user.Status,
		})
	}
	return rsp, nil
}

// UpdateUserInfo 更新用户资料
func (u *userInfoService) UpdateUserInfo(uuid string, req request.UpdateUserInfoRequest) error {
	user, err := u.repos.User.FindByUuid(uuid)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return errorx.New(errorx.CodeUserNotExist, "用户不存在")
		}
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}

	if req.Nickname != "" {
		user.Nickname = req.Nickname
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}
	if req.Signature != "" {
		user.Signature = req.Signature
	}

	if err := u.repos.User.UpdateUserInfo(user); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// GetOnlineUsers 获取当前在线用户 UUID 列表
// 在线集合由 chat 包在连接注册/注销时维护
func (u *userInfoService) GetOnlineUsers() ([]string, error) {
	members, err := u.cache.GetSetMembers(context.Background(), constants.ONLINE_USERS_KEY)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	return members, nil
}
