package respond

// FriendAcceptedRespond 申请通过载荷
// 同一结构用于两个事件：接受方收到 friendRequest.accepted.selfAck，
// 申请方收到 friendRequest.accepted.peerAck，PeerUser 均为对方的资料
type FriendAcceptedRespond struct {
	PeerUser GetUserListRespond `json:"peer_user"`
}
