// Package model 定义数据库实体模型
// 本文件定义好友边模型，一条记录表示一对用户之间的关系状态
package model

import (
	"gorm.io/gorm"
)

// FriendEdge 好友边模型
// 对应数据库 friend_edge 表
//
// 一对用户之间的关系只存一行，按无序对 (user_low_id, user_high_id) 建唯一索引。
// 申请、接受、删除都落在同一行上，单条 SQL 即可完成，不存在"先写一方、
// 再写另一方"的中间态，双向对称性由构造保证。
type FriendEdge struct {
	gorm.Model

	// UserLowId / UserHighId 无序对的两端
	// 约定 UserLowId < UserHighId（字典序），保证同一对用户只有一种键
	UserLowId  string `gorm:"column:user_low_id;type:char(20);not null;uniqueIndex:idx_edge_pair,priority:1;comment:无序对较小一端"`
	UserHighId string `gorm:"column:user_high_id;type:char(20);not null;uniqueIndex:idx_edge_pair,priority:2;comment:无序对较大一端"`

	// RequesterId 申请发起方 UUID
	// Status 为申请中时用于区分方向；成为好友后仅作历史记录
	RequesterId string `gorm:"column:requester_id;index;type:char(20);not null;comment:申请发起方"`

	// Status 边状态
	// 0=申请中, 1=已是好友
	// 参见 pkg/enum/friendedge/edge_status_enum
	Status int8 `gorm:"column:status;not null;comment:边状态，0.申请中，1.好友"`
}

// TableName 指定表名
func (FriendEdge) TableName() string {
	return "friend_edge"
}

// PairKey 将一对用户 UUID 归一化为 (low, high) 形式
func PairKey(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}

// PeerOf 返回边上与 userId 相对的另一端
func (e *FriendEdge) PeerOf(userId string) string {
	if e.UserLowId == userId {
		return e.UserHighId
	}
	return e.UserLowId
}

// TargetId 返回申请的接收方（与 RequesterId 相对的一端）
func (e *FriendEdge) TargetId() string {
	return e.PeerOf(e.RequesterId)
}
