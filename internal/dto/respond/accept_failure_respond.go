package respond

// AcceptFailureRespond 接受申请失败载荷 (WebSocket friendRequest.acceptFailure)
type AcceptFailureRespond struct {
	Reason    string `json:"reason"`
	Detail    string `json:"detail"`
	SubjectId string `json:"subject_id"`
}
