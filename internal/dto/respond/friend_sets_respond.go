package respond

// FriendSetsRespond 好友关系三个投影集合
// friends / incoming / outgoing 三个集合互斥：同一对用户同一时刻
// 只会出现在其中一个集合里
type FriendSetsRespond struct {
	Friends      []GetUserListRespond `json:"friends"`
	Incoming     []GetUserListRespond `json:"incoming"`
	Outgoing     []GetUserListRespond `json:"outgoing"`
	PendingCount int64                `json:"pending_count"`
}
