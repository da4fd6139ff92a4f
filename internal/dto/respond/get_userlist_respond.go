package respond

// GetUserListRespond 用户摘要（列表项）
// 使用位置:
//   - internal/service/user/service.go: GetUserList
//   - internal/service/relationship/service.go: ListSets
type GetUserListRespond struct {
	Uuid      string `json:"uuid"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	Signature string `json:"signature"`
	Status    int8   `json:"status"`
}
