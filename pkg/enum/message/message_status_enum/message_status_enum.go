// Package message_status_enum 定义消息投递状态
package message_status_enum

const (
	Unsent int8 = iota // 已落库，尚未推送给接收方
	Sent               // 已通过 WebSocket 推送成功
)
