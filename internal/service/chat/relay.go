// Package chat 实现实时层的核心服务
// relay.go
// 核心职责：消息转发——先落库，再按在线状态推送给接收方
package chat

import (
	"go.uber.org/zap"

	"chatlog_server/internal/dao/mysql"
	myredis "chatlog_server/internal/dao/redis"
	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/dto/respond"
	"chatlog_server/internal/model"
	"chatlog_server/internal/service"
	"chatlog_server/internal/service/message"
	"chatlog_server/pkg/enum/message/message_status_enum"
	"chatlog_server/pkg/errorx"
	"chatlog_server/pkg/util/snowflake"
)

// MessageRelay 消息转发器
// 持久化永远先于推送：接收方不在线时消息同样落库，
// 推送只是 at-most-once 的附加投递。
type MessageRelay struct {
	registry      *PresenceRegistry
	messageRepo   mysql.MessageRepository
	relationships service.RelationshipService
	cache         myredis.AsyncCacheService

	// 雪花 ID 生成函数，测试中可替换
	genId func() int64
}

// NewMessageRelay 创建消息转发器
func NewMessageRelay(
	registry *PresenceRegistry,
	messageRepo mysql.MessageRepository,
	relationships service.RelationshipService,
	cache myredis.AsyncCacheService,
) *MessageRelay {
	return &MessageRelay{
		registry:      registry,
		messageRepo:   messageRepo,
		relationships: relationships,
		cache:         cache,
		genId:         snowflake.GenerateID,
	}
}

// Relay 转发一条消息
// 服务端校验好友关系后落库，接收方在线则推送 message.receive。
// 好友校验在服务端进行，客户端的本地判断不是安全边界。
func (r *MessageRelay) Relay(senderId string, req request.MessageSendRequest) error {
	isFriend, err := r.relationships.IsFriend(senderId, req.To)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if !isFriend {
		return errorx.New(errorx.CodeNotFriend, "非好友之间不允许发送消息")
	}

	msg := model.Message{
		Uuid:      r.genId(),
		SendId:    senderId,
		ReceiveId: req.To,
		Content:   req.Text,
		Status:    message_status_enum.Unsent,
	}
	if err := r.messageRepo.Create(&msg); err != nil {
		// 持久化失败是唯一需要上报的错误，消息不投递
		zap.L().Error("消息落库失败", zap.Error(err))
		return errorx.ErrServerBusy
	}

	rsp := message.ToListRespond(&msg)
	message.AppendMessageCache(r.cache, msg, rsp)

	receiver := r.registry.Lookup(req.To)
	if receiver == nil {
		// 路由缺失不是错误：消息已落库，对方上线后通过历史记录读到
		zap.L().Debug("接收方不在线，跳过推送", zap.String("receive_id", req.To))
		return nil
	}

	frame, err := NewEnvelope(EventMessageReceive, respond.MessageReceiveRespond{
		From:      senderId,
		Text:      msg.Content,
		CreatedAt: rsp.CreatedAt,
	})
	if err != nil {
		zap.L().Error(err.Error())
		return nil
	}
	if !receiver.Push(&MessageBack{Message: frame, Uuid: msg.Uuid}) {
		zap.L().Warn("回写通道已满，丢弃推送", zap.String("receive_id", req.To))
	}
	return nil
}
