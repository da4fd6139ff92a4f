package request

// MessageSendRequest 聊天消息事件载荷 (WebSocket message.send)
// 使用位置:
//   - internal/service/chat/dispatcher.go: Dispatch
//   - internal/service/chat/relay.go: Relay
type MessageSendRequest struct {
	To   string `json:"to" binding:"required"`
	Text string `json:"text" binding:"required"`
}
