package respond

// RelationRespond 与某个用户之间的关系探测响应
// Relation 取值: none / outgoing / incoming / friends
type RelationRespond struct {
	PeerId   string `json:"peer_id"`
	Relation string `json:"relation"`
}
