package respond

// UnfriendFailureRespond 解除好友失败载荷 (WebSocket friend.unfriendFailure)
type UnfriendFailureRespond struct {
	Reason string `json:"reason"`
}
