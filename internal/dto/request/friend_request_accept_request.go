package request

// FriendRequestAcceptRequest 接受好友申请事件载荷 (WebSocket friendRequest.accept)
type FriendRequestAcceptRequest struct {
	From string `json:"from" binding:"required"`
}
