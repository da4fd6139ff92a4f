// Package message 提供历史消息查询的业务逻辑
// 实时转发不在本包，见 internal/service/chat 的 MessageRelay
package message

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"chatlog_server/internal/dao/mysql"
	myredis "chatlog_server/internal/dao/redis"
	"chatlog_server/internal/dto/respond"
	"chatlog_server/internal/model"
	"chatlog_server/pkg/constants"
	"chatlog_server/pkg/errorx"
)

// messageService 消息业务逻辑实现
type messageService struct {
	repos *mysql.Repositories
	cache myredis.AsyncCacheService
}

// NewMessageService 构造函数，注入所有依赖
func NewMessageService(repos *mysql.Repositories, cache myredis.AsyncCacheService) *messageService {
	return &messageService{repos: repos, cache: cache}
}

// PairCacheKey 一对用户的消息列表缓存键
// 以无序对为键，双方查询命中同一份缓存
func PairCacheKey(a, b string) string {
	low, high := model.PairKey(a, b)
	return "message_list_" + low + "_" + high
}

// ToListRespond 将消息模型转换为列表项
func ToListRespond(msg *model.Message) respond.GetMessageListRespond {
	return respond.GetMessageListRespond{
		Uuid:      strconv.FormatInt(msg.Uuid, 10),
		SendId:    msg.SendId,
		ReceiveId: msg.ReceiveId,
		Content:   msg.Content,
		Status:    msg.Status,
		CreatedAt: msg.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// AppendMessageCache 异步追加消息到缓存
// 仅在缓存已存在时追加，未命中的对话等首次查询时整体回填
func AppendMessageCache(cache myredis.AsyncCacheService, msg model.Message, rsp respond.GetMessageListRespond) {
	cache.SubmitTask(func() {
		key := PairCacheKey(msg.SendId, msg.ReceiveId)
		cached, err := cache.GetOrError(context.Background(), key)
		if err != nil {
			if errorx.GetCode(err) != errorx.CodeNotFound {
				zap.L().Error("Redis update message cache failed", zap.Error(err))
			}
			return
		}
		var list []respond.GetMessageListRespond
		if err := json.Unmarshal([]byte(cached), &list); err != nil {
			return
		}
		list = append(list, rsp)
		if listBytes, err := json.Marshal(list); err == nil {
			if err := cache.Set(context.Background(), key, string(listBytes), time.Minute*constants.REDIS_TIMEOUT); err != nil {
				zap.L().Error("Redis update message cache failed", zap.Error(err))
			}
		}
	})
}

// GetMessageList 获取两个用户之间的聊天记录，按创建时间升序
// 先查缓存，未命中回源数据库并异步回填
func (m *messageService) GetMessageList(ownerId, peerId string) ([]respond.GetMessageListRespond, error) {
	key := PairCacheKey(ownerId, peerId)
	cached, err := m.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error(err.Error())
	} else if cached != "" {
		var list []respond.GetMessageListRespond
		if err := json.Unmarshal([]byte(cached), &list); err == nil {
			return list, nil
		}
	}

	messages, err := m.repos.Message.FindByUserIds(ownerId, peerId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	rsp := make([]respond.GetMessageListRespond, 0, len(messages))
	for i := range messages {
		rsp = append(rsp, ToListRespond(&messages[i]))
	}

	// 异步回填缓存
	if listBytes, err := json.Marshal(rsp); err == nil {
		m.cache.SubmitTask(func() {
			if err := m.cache.Set(context.Background(), key, string(listBytes), time.Minute*constants.REDIS_TIMEOUT); err != nil {
				zap.L().Error("Redis set message cache failed", zap.Error(err))
			}
		})
	}
	return rsp, nil
}

// GetChatPartners 获取有过消息往来的用户列表
func (m *messageService) GetChatPartners(ownerId string) ([]respond.GetUserListRespond, error) {
	partnerIds, err := m.repos.Message.FindPartnerIds(ownerId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	users, err := m.repos.User.FindByUuids(partnerIds)
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
