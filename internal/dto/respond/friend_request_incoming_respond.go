package respond

// FriendRequestIncomingRespond 新申请通知载荷 (WebSocket friendRequest.incoming)
type FriendRequestIncomingRespond struct {
	FromUser     GetUserListRespond `json:"from_user"`
	PendingCount int64              `json:"pending_count"`
}
