package respond

// FriendRequestAckRespond 申请已记录确认 (WebSocket friendRequest.ack)
type FriendRequestAckRespond struct {
	To string `json:"to"`
}
