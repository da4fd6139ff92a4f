// Package chat 实现实时层的核心服务
// server.go
// 核心职责：聊天服务器聚合结构
// 1. 升级 WebSocket 连接并登记在线状态
// 2. 每条连接一读一写两个协程，读协程逐条调度事件
// 3. 断开时做句柄绑定的注销，旧连接的延迟断开不影响新连接
package chat

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chatlog_server/internal/dao/mysql"
	myredis "chatlog_server/internal/dao/redis"
	"chatlog_server/internal/service"
	"chatlog_server/pkg/constants"
	"chatlog_server/pkg/enum/message/message_status_enum"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	// 检查连接的Origin头
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ChatServer 聊天服务器聚合结构
// 封装注册表、调度器与转发器，管理连接的生命周期
type ChatServer struct {
	registry    *PresenceRegistry
	dispatcher  *Dispatcher
	relay       *MessageRelay
	messageRepo mysql.MessageRepository
	cache       myredis.AsyncCacheService
}

// NewChatServer 创建聊天服务器实例
func NewChatServer(repos *mysql.Repositories, relationships service.RelationshipService, cache myredis.AsyncCacheService) *ChatServer {
	registry := NewPresenceRegistry()
	relay := NewMessageRelay(registry, repos.Message, relationships, cache)
	dispatcher := NewDispatcher(registry, relationships, relay)
	return &ChatServer{
		registry:    registry,
		dispatcher:  dispatcher,
		relay:       relay,
		messageRepo: repos.Message,
		cache:       cache,
	}
}

// Registry 获取在线状态注册表
func (s *ChatServer) Registry() *PresenceRegistry {
	return s.registry
}

// HandleConnection 升级连接并接管其生命周期
// clientId 来自已通过认证的上游（JWT 中间件），连接本身不自报身份
func (s *ChatServer) HandleConnection(c *gin.Context, clientId string) error {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error(err.Error())
		return err
	}

	client := NewUserConn(conn, clientId, constants.CHANNEL_SIZE)
	// 同一身份后登录者生效，旧连接直接关闭
	if old := s.registry.Register(clientId, client); old != nil {
		old.Close()
	}
	s.markOnline(clientId)

	go s.readLoop(client)
	go s.writeLoop(client)
	zap.L().Info("ws连接成功", zap.String("uuid", clientId))
	return nil
}

// readLoop 连接的读协程
// 同一连接的事件在这里逐条处理，天然保证到达顺序；
// 不同连接的读协程并发运行
func (s *ChatServer) readLoop(client *UserConn) {
	defer s.disconnect(client)
	for {
		_, raw, err := client.Conn.ReadMessage() // 阻塞状态
		if err != nil {
			zap.L().Info("ws连接断开", zap.String("uuid", client.Uuid), zap.Error(err))
			return
		}
		s.dispatcher.Dispatch(client, raw)
	}
}

// writeLoop 连接的写协程
// 消费回写通道，推送成功的落库消息改为已发送状态
func (s *ChatServer) writeLoop(client *UserConn) {
	for messageBack := range client.SendBack {
		if err := client.Conn.WriteMessage(websocket.TextMessage, messageBack.Message); err != nil {
			zap.L().Error(err.Error())
			return
		}
		if messageBack.Uuid != 0 {
			if err := s.messageRepo.UpdateStatus(messageBack.Uuid, message_status_enum.Sent); err != nil {
				zap.L().Error(err.Error())
			}
		}
	}
}

// disconnect 连接断开后的清理
// 注销绑定到句柄：该身份已被新连接覆盖时不动注册表
func (s *ChatServer) disconnect(client *UserConn) {
	if s.registry.Unregister(client.Uuid, client) {
		s.markOffline(client.Uuid)
	}
	client.Close()
}

// markOnline 异步把用户加入在线集合
func (s *ChatServer) markOnline(uuid string) {
	s.cache.SubmitTask(func() {
		if err := s.cache.AddToSet(context.Background(), constants.ONLINE_USERS_KEY, uuid); err != nil {
			zap.L().Error(err.Error())
		}
	})
}

// markOffline 异步把用户移出在线集合
func (s *ChatServer) markOffline(uuid string) {
	s.cache.SubmitTask(func() {
		if err := s.cache.RemoveFromSet(context.Background(), constants.ONLINE_USERS_KEY, uuid); err != nil {
			zap.L().Error(err.Error())
		}
	})
}

// Close 关闭所有连接并清空在线集合
func (s *ChatServer) Close() {
	for _, client := range s.registry.Drain() {
		client.Close()
	}
	if err := s.cache.Delete(context.Background(), constants.ONLINE_USERS_KEY); err != nil {
		zap.L().Error(err.Error())
	}
}
