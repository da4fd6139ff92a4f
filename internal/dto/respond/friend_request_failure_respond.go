package respond

// FriendRequestFailureRespond 申请失败载荷 (WebSocket friendRequest.failure)
// Reason 为客户端回滚乐观状态的判别字段，Detail 仅用于展示
type FriendRequestFailureRespond struct {
	Reason string `json:"reason"`
	Detail string `json:"detail"`
}
