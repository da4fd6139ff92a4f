package request

// DeclineFriendRequestRequest 拒绝好友申请请求（被申请方拒绝）
// 使用位置:
//   - internal/handler/friend_handler.go: DeclineFriendRequest
type DeclineFriendRequestRequest struct {
	RequesterId string `json:"requester_id" binding:"required"`
}
