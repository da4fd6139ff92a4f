package request

// UnfriendRequest 解除好友关系事件载荷 (WebSocket friend.unfriend)
type UnfriendRequest struct {
	To string `json:"to" binding:"required"`
}
