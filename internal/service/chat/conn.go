// Package chat 实现实时层的核心服务
// conn.go
// 核心职责：单个 WebSocket 连接的封装与回写通道
package chat

import (
	"sync"

	"github.com/gorilla/websocket"
)

// MessageBack 回写给前端的一帧
// Uuid 非零时表示这是一条落库消息，写成功后需要把状态改为已发送
type MessageBack struct {
	Message []byte
	Uuid    int64
}

// UserConn 一条活跃的用户连接
type UserConn struct {
	Conn     *websocket.Conn
	Uuid     string
	SendBack chan *MessageBack // 推送给前端的回写通道

	closeOnce sync.Once
}

// NewUserConn 封装一条已升级的 WebSocket 连接
func NewUserConn(conn *websocket.Conn, uuid string, channelSize int) *UserConn {
	return &UserConn{
		Conn:     conn,
		Uuid:     uuid,
		SendBack: make(chan *MessageBack, channelSize),
	}
}

// Close 关闭底层连接与回写通道，可安全重复调用
func (c *UserConn) Close() {
	c.closeOnce.Do(func() {
		if c.Conn != nil {
			_ = c.Conn.Close()
		}
		close(c.SendBack)
	})
}

// Push 非阻塞投递一帧到回写通道
// 通道已满时丢弃并返回 false，推送是 at-most-once 的
func (c *UserConn) Push(mb *MessageBack) (ok bool) {
	// 连接关闭后通道已 close，向其发送会 panic，这里吞掉转为失败
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case c.SendBack <- mb:
		return true
	default:
		return false
	}
}
