package relationship

import "chatlog_server/internal/dto/respond"

// Reason 取值：客户端据此回滚或修正乐观更新的状态
// 人类可读的描述放在 Detail，判别逻辑只依赖 Reason
const (
	ReasonDuplicate = "duplicate"  // 该用户对之间已存在申请或好友关系
	ReasonNoRequest = "no_request" // 申请不存在（已被处理或撤回）
	ReasonNoFriend  = "no_friend"  // 好友关系不存在
	ReasonError     = "error"      // 存储层失败等通用错误
)

// Outcome 状态机操作的结果
// 领域拒绝（重复申请、申请不存在、非好友）与存储失败都通过同一个
// 结果通道返回，调用方只看 Reason 判别，不需要区分错误来源的结构。
type Outcome struct {
	Ok     bool   // 操作是否成功
	Reason string // 失败判别标签，成功时为空
	Detail string // 人类可读的失败描述

	ActorId string // 发起操作的用户
	PeerId  string // 操作针对的对端用户

	// 推送载荷所需的资料，按需填充：
	// 申请成功时 ActorUser 用于 friendRequest.incoming，
	// 接受成功时 ActorUser/PeerUser 分别用于 peerAck/selfAck
	ActorUser *respond.GetUserListRespond
	PeerUser  *respond.GetUserListRespond

	// 对端当前待处理的申请数，仅申请成功时填充
	PendingCount int64
}

// reject 构造领域拒绝结果
func reject(actorId, peerId, reason, detail string) *Outcome {
	return &Outcome{
		Ok:      false,
		Reason:  reason,
		Detail:  detail,
		ActorId: actorId,
		PeerId:  peerId,
	}
}
