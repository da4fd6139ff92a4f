package respond

// MessageReceiveRespond 消息推送载荷 (WebSocket message.receive)
// 使用位置:
//   - internal/service/chat/relay.go: Relay
type MessageReceiveRespond struct {
	From      string `json:"from"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}
