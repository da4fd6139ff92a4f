package respond

// GetMessageListRespond 历史消息列表项
// Uuid 为雪花 ID，以字符串下发避免 JS 端 Number 精度丢失
type GetMessageListRespond struct {
	Uuid      string `json:"uuid"`
	SendId    string `json:"send_id"`
	ReceiveId string `json:"receive_id"`
	Content   string `json:"content"`
	Status    int8   `json:"status"`
	CreatedAt string `json:"created_at"`
}
