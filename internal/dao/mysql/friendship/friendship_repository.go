package friendship

import (
	"chatlog_server/internal/dao/mysql/internal"
	"chatlog_server/internal/model"
	"chatlog_server/pkg/enum/friendedge/edge_status_enum"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository 创建好友边 Repository
func NewFriendshipRepository(db *gorm.DB) *friendshipRepository {
	return &friendshipRepository{db: db}
}

// pairScope 按无序对定位边
func (r *friendshipRepository) pairScope(a, b string) *gorm.DB {
	low, high := model.PairKey(a, b)
	return r.db.Where("user_low_id = ? AND user_high_id = ?", low, high)
}

// InsertPending 插入一条申请边
// 使用 ON CONFLICT DO NOTHING（MySQL 下为 INSERT IGNORE）：唯一索引
// idx_edge_pair 保证同一对用户并发插入时恰好一条成功，检查与写入是
// 同一条语句，不存在可被插队的间隙。
func (r *friendshipRepository) InsertPending(requesterId, targetId string) (bool, error) {
	low, high := model.PairKey(requesterId, targetId)
	edge := model.FriendEdge{
		UserLowId:   low,
		UserHighId:  high,
		RequesterId: requesterId,
		Status:      edge_status_enum.Pending,
	}
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if res.Error != nil {
		return false, internal.WrapDBErrorf(res.Error, "插入申请边 %s -> %s", requesterId, targetId)
	}
	return res.RowsAffected > 0, nil
}

// AcceptPending 将申请边置为好友
// 条件 UPDATE：只有该对上存在 requesterId 发起的、仍处于申请中的边时
// 才会命中。影响行数为 0 即"没有这条申请"。
func (r *friendshipRepository) AcceptPending(requesterId, acceptorId string) (bool, error) {
	res := r.pairScope(requesterId, acceptorId).
		Model(&model.FriendEdge{}).
		Where("status = ? AND requester_id = ?", edge_status_enum.Pending, requesterId).
		Update("status", edge_status_enum.Friends)
	if res.Error != nil {
		return false, internal.WrapDBErrorf(res.Error, "接受申请 %s -> %s", requesterId, acceptorId)
	}
	return res.RowsAffected > 0, nil
}

// DeletePending 删除申请边（撤回或拒绝共用，二者只是调用方身份不同）
// 物理删除：唯一索引 idx_edge_pair 覆盖未删除行，软删除会阻止同一对
// 用户之后重新发起申请。
func (r *friendshipRepository) DeletePending(requesterId, otherId string) (bool, error) {
	res := r.pairScope(requesterId, otherId).
		Where("status = ? AND requester_id = ?", edge_status_enum.Pending, requesterId).
		Unscoped().
		Delete(&model.FriendEdge{})
	if res.Error != nil {
		return false, internal.WrapDBErrorf(res.Error, "删除申请边 %s -> %s", requesterId, otherId)
	}
	return res.RowsAffected > 0, nil
}

// DeleteFriendship 删除好友边
func (r *friendshipRepository) DeleteFriendship(userId, peerId string) (bool, error) {
	res := r.pairScope(userId, peerId).
		Where("status = ?", edge_status_enum.Friends).
		Unscoped().
		Delete(&model.FriendEdge{})
	if res.Error != nil {
		return false, internal.WrapDBErrorf(res.Error, "删除好友边 %s - %s", userId, peerId)
	}
	return res.RowsAffected > 0, nil
}

// FindByPair 查找一对用户之间的边
func (r *friendshipRepository) FindByPair(userId, peerId string) (*model.FriendEdge, error) {
	var edge model.FriendEdge
	if err := r.pairScope(userId, peerId).First(&edge).Error; err != nil {
		return nil, internal.WrapDBErrorf(err, "查询边 %s - %s", userId, peerId)
	}
	return &edge, nil
}

// FindPendingByRequester 查找某用户发出的全部申请边（outgoing 投影）
func (r *friendshipRepository) FindPendingByRequester(userId string) ([]model.FriendEdge, error) {
	var edges []model.FriendEdge
	err := r.db.
		Where("status = ? AND requester_id = ?", edge_status_enum.Pending, userId).
		Find(&edges).Error
	if err != nil {
		return nil, internal.WrapDBErrorf(err, "查询发出的申请 user_id=%s", userId)
	}
	return edges, nil
}

// FindPendingByTarget 查找某用户收到的全部申请边（incoming 投影）
func (r *friendshipRepository) FindPendingByTarget(userId string) ([]model.FriendEdge, error) {
	var edges []model.FriendEdge
	err := r.db.
		Where("status = ? AND requester_id <> ? AND (user_low_id = ? OR user_high_id = ?)",
			edge_status_enum.Pending, userId, userId, userId).
		Find(&edges).Error
	if err != nil {
		return nil, internal.WrapDBErrorf(err, "查询收到的申请 user_id=%s", userId)
	}
	return edges, nil
}

// FindFriends 查找某用户的全部好友边（friends 投影）
func (r *friendshipRepository) FindFriends(userId string) ([]model.FriendEdge, error) {
	var edges []model.FriendEdge
	err := r.db.
		Where("status = ? AND (user_low_id = ? OR user_high_id = ?)",
			edge_status_enum.Friends, userId, userId).
		Find(&edges).Error
	if err != nil {
		return nil, internal.WrapDBErrorf(err, "查询好友列表 user_id=%s", userId)
	}
	return edges, nil
}

// CountPendingByTarget 统计某用户收到的待处理申请数
func (r *friendshipRepository) CountPendingByTarget(userId string) (int64, error) {
	var count int64
	err := r.db.Model(&model.FriendEdge{}).
		Where("status = ? AND requester_id <> ? AND (user_low_id = ? OR user_high_id = ?)",
			edge_status_enum.Pending, userId, userId, userId).
		Count(&count).Error
	if err != nil {
		return 0, internal.WrapDBErrorf(err, "统计收到的申请 user_id=%s", userId)
	}
	return count, nil
}

// IsFriend 判断两个用户是否为好友
func (r *friendshipRepository) IsFriend(userId, peerId string) (bool, error) {
	var count int64
	low, high := model.PairKey(userId, peerId)
	err := r.db.Model(&model.FriendEdge{}).
		Where("user_low_id = ? AND user_high_id = ? AND status = ?", low, high, edge_status_enum.Friends).
		Count(&count).Error
	if err != nil {
		return false, internal.WrapDBErrorf(err, "查询好友关系 %s - %s", userId, peerId)
	}
	return count > 0, nil
}
