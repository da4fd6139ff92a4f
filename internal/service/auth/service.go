// Package auth 提供认证相关的业务逻辑
// 处理注册、登录、双 Token 刷新与注销
package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"chatlog_server/internal/dao/mysql"
	myredis "chatlog_server/internal/dao/redis"
	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/dto/respond"
	"chatlog_server/internal/model"
	"chatlog_server/pkg/constants"
	"chatlog_server/pkg/enum/user_info/user_status_enum"
	"chatlog_server/pkg/errorx"
	"chatlog_server/pkg/util/jwt"
	"chatlog_server/pkg/util/random"
)

// defaultAvatar 新用户默认头像
const defaultAvatar = "https://cube.elemecdn.com/0/88/03b0d39583f48206768a7534e55bcpng.png"

// Service 认证服务实现
type Service struct {
	repos *mysql.Repositories
	cache myredis.CacheService // 缓存服务（依赖倒置）
}

// NewAuthService 创建认证服务实例
func NewAuthService(repos *mysql.Repositories, cache myredis.CacheService) *Service {
	return &Service{
		repos: repos,
		cache: cache,
	}
}

// tokenKey Refresh Token ID 在 Redis 中的键
func tokenKey(userId string) string {
	return "user_token:" + userId
}

// issueTokens 生成双 Token 并把 TokenID 写入 Redis（单点互踢）
func (s *Service) issueTokens(userId string) (accessToken, refreshToken string, err error) {
	accessToken, err = jwt.GenerateAccessToken(userId)
	if err != nil {
		zap.L().Error("生成 Access Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	var tokenID string
	refreshToken, tokenID, err = jwt.GenerateRefreshToken(userId)
	if err != nil {
		zap.L().Error("生成 Refresh Token 失败", zap.Error(err))
		return "", "", errorx.ErrServerBusy
	}

	ttl := time.Duration(constants.REFRESH_TOKEN_EXPIRY_HOURS) * time.Hour
	if err := s.cache.Set(context.Background(), tokenKey(userId), tokenID, ttl); err != nil {
		// 不阻塞登录流程，仅记录日志
		zap.L().Error("存储 Token ID 到 Redis 失败", zap.Error(err))
	}
	return accessToken, refreshToken, nil
}

// Register 用户注册
func (s *Service) Register(req request.RegisterRequest) (*respond.RegisterRespond, error) {
	if _, err := s.repos.User.FindByUsername(req.Username); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, "用户名已被占用")
	} else if errorx.GetCode(err) != errorx.CodeNotFound {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	var newUser model.UserInfo
	newUser.Uuid = "U" + random.GetNowAndLenRandomString(11)
	newUser.Username = req.Username
	newUser.RawPassword = req.Password
	newUser.Nickname = req.Nickname
	if newUser.Nickname == "" {
		newUser.Nickname = req.Username
	}
	newUser.Avatar = defaultAvatar
	newUser.Status = user_status_enum.NORMAL

	if err := s.repos.User.CreateUser(&newUser); err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	accessToken, refreshToken, err := s.issueTokens(newUser.Uuid)
	if err != nil {
		return nil, err
	}

	registerRsp := &respond.RegisterRespond{
		Uuid:         newUser.Uuid,
		Username:     newUser.Username,
		Nickname:     newUser.Nickname,
		Avatar:       newUser.Avatar,
		Signature:    newUser.Signature,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	year, month, day := newUser.CreatedAt.Date()
	registerRsp.CreatedAt = fmt.Sprintf("%d.%d.%d", year, month, day)

	return registerRsp, nil
}

// Login 密码登录
func (s *Service) Login(req request.LoginRequest) (*respond.LoginRespond, error) {
	user, err := s.repos.User.FindByUsername(req.Username)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return nil, errorx.New(errorx.CodeUserNotExist, "用户不存在，请注册")
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidPassword, "密码不正确，请重试")
	}

	accessToken, refreshToken, err := s.issueTokens(user.Uuid)
	if err != nil {
		return nil, err
	}

	loginRsp := &respond.LoginRespond{
		Uuid:         user.Uuid,
		Username:     user.Username,
		Nickname:     user.Nickname,
		Avatar:       user.Avatar,
		Signature:    user.Signature,
		Status:       user.Status,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	year, month, day := user.CreatedAt.Date()
	loginRsp.CreatedAt = fmt.Sprintf("%d.%d.%d", year, month, day)

	return loginRsp, nil
}

// RefreshToken 用 Refresh Token 换取新的双 Token
// TokenID 随之旋转，旧的 Refresh Token 立即失效
func (s *Service) RefreshToken(req request.RefreshTokenRequest) (*respond.RefreshTokenRespond, error) {
	claims, err := jwt.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, errorx.New(errorx.CodeUnauthorized, "Refresh Token 无效或已过期")
	}
	if claims.Subject != jwt.SubjectRefresh {
		return nil, errorx.New(errorx.CodeUnauthorized, "Token 类型错误")
	}

	valid, err := s.ValidateTokenID(claims.UserID, claims.TokenID)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	if !valid {
		// 已在其它设备登录或已注销
		return nil, errorx.New(errorx.CodeUnauthorized, "登录状态已失效，请重新登录")
	}

	accessToken, refreshToken, err := s.issueTokens(claims.UserID)
	if err != nil {
		return nil, err
	}
	return &respond.RefreshTokenRespond{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout 注销，删除 Redis 中的 TokenID
func (s *Service) Logout(userId string) error {
	if err := s.cache.Delete(context.Background(), tokenKey(userId)); err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	return nil
}

// ValidateTokenID 验证用户的 Token ID 是否有效
// 用于实现单点登录互踢机制
func (s *Service) ValidateTokenID(userId, tokenID string) (bool, error) {
	validTokenID, err := s.cache.Get(context.Background(), tokenKey(userId))
	if err != nil {
		return false, err
	}
	if validTokenID == "" {
		return false, nil
	}
	return tokenID == validTokenID, nil
}
