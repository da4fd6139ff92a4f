package respond

// UnfriendAckRespond 好友边已删除确认 (WebSocket friend.unfriendAck)
// 双方（在线的一侧）都会收到，PeerId 为各自视角下的对方
type UnfriendAckRespond struct {
	PeerId string `json:"peer_id"`
}
