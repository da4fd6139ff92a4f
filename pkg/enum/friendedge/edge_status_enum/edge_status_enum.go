// Package edge_status_enum 定义好友边的状态
// 一对用户之间最多存在一条边：要么是待处理的申请，要么是已确认的好友关系
package edge_status_enum

const (
	Pending int8 = iota // 申请中，requester_id 标记发起方
	Friends             // 双方已互为好友
)
