// Package mysql 定义数据访问层接口和聚合结构
// 采用 Repository 模式将数据访问逻辑与业务逻辑分离
// 所有 Repository 接口在此文件定义，具体实现在各自的子包中
package mysql

import (
	"chatlog_server/internal/model"
)

// ==================== Repository 接口定义 ====================

// UserRepository 用户数据访问接口
type UserRepository interface {
	// FindByUuid 根据 UUID 查找用户
	FindByUuid(uuid string) (*model.UserInfo, error)
	// FindByUsername 根据登录名查找用户
	FindByUsername(username string) (*model.UserInfo, error)
	// FindAllExcept 查找除指定用户外的所有用户
	FindAllExcept(excludeUuid string) ([]model.UserInfo, error)
	// FindByUuids 批量根据 UUID 查找用户
	FindByUuids(uuids []string) ([]model.UserInfo, error)
	// CreateUser 创建新用户
	CreateUser(user *model.UserInfo) error
	// UpdateUserInfo 更新用户信息
	UpdateUserInfo(user *model.UserInfo) error
}

// FriendshipRepository 好友边数据访问接口
//
// 一对用户之间最多一行记录（无序对唯一索引），所有写操作都是带条件的
// 单条语句，通过影响行数区分"成功"与"前置条件不满足"。检查与写入之间
// 没有可被并发插队的间隙。
type FriendshipRepository interface {
	// InsertPending 插入一条申请边（INSERT IGNORE 语义）
	// 该无序对已存在任何边时不写入并返回 created=false
	InsertPending(requesterId, targetId string) (created bool, err error)
	// AcceptPending 将申请边置为好友（条件 UPDATE）
	// 只有该对上存在 requesterId 发起的申请时才生效
	AcceptPending(requesterId, acceptorId string) (accepted bool, err error)
	// DeletePending 删除申请边（条件 DELETE，撤回或拒绝共用）
	// 只有该对上存在 requesterId 发起的申请时才生效
	DeletePending(requesterId, otherId string) (deleted bool, err error)
	// DeleteFriendship 删除好友边（条件 DELETE）
	DeleteFriendship(userId, peerId string) (deleted bool, err error)

	// FindByPair 查找一对用户之间的边（无边返回 CodeNotFound）
	FindByPair(userId, peerId string) (*model.FriendEdge, error)
	// FindPendingByRequester 查找某用户发出的全部申请边
	FindPendingByRequester(userId string) ([]model.FriendEdge, error)
	// FindPendingByTarget 查找某用户收到的全部申请边
	FindPendingByTarget(userId string) ([]model.FriendEdge, error)
	// FindFriends 查找某用户的全部好友边
	FindFriends(userId string) ([]model.FriendEdge, error)
	// CountPendingByTarget 统计某用户收到的待处理申请数
	CountPendingByTarget(userId string) (int64, error)
	// IsFriend 判断两个用户是否为好友
	IsFriend(userId, peerId string) (bool, error)
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// Create 创建新消息
	Create(message *model.Message) error
	// FindByUserIds 根据两个用户 ID 查找私聊消息（按创建时间升序）
	FindByUserIds(userOneId, userTwoId string) ([]model.Message, error)
	// UpdateStatus 更新消息投递状态
	UpdateStatus(uuid int64, status int8) error
	// FindPartnerIds 查找某用户有过消息往来的全部对端 UUID
	FindPartnerIds(userId string) ([]string, error)
}
