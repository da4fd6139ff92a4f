package respond

// GetUserInfoRespond 获取用户信息响应
type GetUserInfoRespond struct {
	Uuid      string `json:"uuid"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	Avatar    string `json:"avatar"`
	Signature string `json:"signature"`
	Status    int8   `json:"status"`
	CreatedAt string `json:"created_at"`
}
