package request

// FriendRequestSendRequest 发起好友申请事件载荷 (WebSocket friendRequest.send)
type FriendRequestSendRequest struct {
	To string `json:"to" binding:"required"`
}
