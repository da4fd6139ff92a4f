package request

// CancelFriendRequestRequest 撤回好友申请请求（申请方主动撤回）
// 使用位置:
//   - internal/handler/friend_handler.go: CancelFriendRequest
type CancelFriendRequestRequest struct {
	TargetId string `json:"target_id" binding:"required"`
}
