// Package chat 实现实时层的核心服务
// events.go
// 核心职责：WebSocket 事件协议的信封定义与事件名常量
package chat

import "encoding/json"

// 事件名常量
// 客户端 -> 服务端
const (
	EventMessageSend       = "message.send"       // 转发一条聊天消息
	EventFriendRequestSend = "friendRequest.send" // 发起好友申请
	EventFriendAccept      = "friendRequest.accept"
	EventUnfriend          = "friend.unfriend"
)

// 服务端 -> 客户端
const (
	EventMessageReceive        = "message.receive"        // 仅推送给接收方
	EventFriendRequestAck      = "friendRequest.ack"      // 申请已记录（发给操作方）
	EventFriendRequestFailure  = "friendRequest.failure"  // 重复申请或错误（发给操作方）
	EventFriendRequestIncoming = "friendRequest.incoming" // 新申请通知（发给对端）
	EventFriendAcceptedSelfAck = "friendRequest.accepted.selfAck" // 发给接受方
	EventFriendAcceptedPeerAck = "friendRequest.accepted.peerAck" // 发给申请方
	EventFriendAcceptFailure   = "friendRequest.acceptFailure"
	EventUnfriendAck           = "friend.unfriendAck" // 发给双方
	EventUnfriendFailure       = "friend.unfriendFailure"
)

// Envelope 事件信封
// 每条 WebSocket 文本帧都是一个信封：事件名 + 原始载荷
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEnvelope 构造一条信封并序列化
func NewEnvelope(event string, data interface{}) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		dataBytes, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = dataBytes
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
