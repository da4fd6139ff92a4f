// Package relationship 实现好友关系状态机
// 一对用户之间的边只有三种状态：none / pending / friends。
// 所有写操作都是单条条件语句（条件 INSERT/UPDATE/DELETE），检查与
// 写入之间不存在可被并发插队的间隙，"双向同时申请"之类的竞态由
// 数据库的唯一索引收敛为恰好一次成功。
package relationship

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"chatlog_server/internal/dao/mysql"
	myredis "chatlog_server/internal/dao/redis"
	"chatlog_server/internal/dto/respond"
	"chatlog_server/internal/model"
	"chatlog_server/pkg/constants"
	"chatlog_server/pkg/enum/friendedge/edge_status_enum"
	"chatlog_server/pkg/errorx"
)

// Service 好友关系状态机实现
type Service struct {
	repos *mysql.Repositories
	cache myredis.AsyncCacheService
}

// NewRelationshipService 构造函数，注入所有依赖
func NewRelationshipService(repos *mysql.Repositories, cache myredis.AsyncCacheService) *Service {
	return &Service{repos: repos, cache: cache}
}

// setsCacheKey 某个用户三个投影集合的缓存键
func setsCacheKey(userId string) string {
	return "friend_sets_" + userId
}

// invalidateSets 异步失效双方的投影集合缓存
// 任何改变边状态的操作都会影响双方的集合视图
func (s *Service) invalidateSets(userIds ...string) {
	s.cache.SubmitTask(func() {
		for _, userId := range userIds {
			if err := s.cache.Delete(context.Background(), setsCacheKey(userId)); err != nil {
				zap.L().Error("Redis invalidate friend sets failed", zap.Error(err))
			}
		}
	})
}

// toSummary 将用户模型转换为列表项
func toSummary(user *model.UserInfo) *respond.GetUserListRespond {
	return &respond.GetUserListRespond{
		Uuid:      user.Uuid,
		Username:  user.Username,
		Nickname:  user.Nickname,
		Avatar:    user.Avatar,
		Signature: user.Signature,
		Status:    user.Status,
	}
}

// SendRequest 发起好友申请
// 写入是单条条件 INSERT：该用户对上已有任何边（双向任一方向的申请
// 或已是好友）时影响行数为 0，统一归入 duplicate。
func (s *Service) SendRequest(actorId, targetId string) *Outcome {
	if actorId == targetId {
		return reject(actorId, targetId, ReasonDuplicate, "不能添加自己为好友")
	}

	target, err := s.repos.User.FindByUuid(targetId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			return reject(actorId, targetId, ReasonError, "用户不存在")
		}
		zap.L().Error(err.Error())
		return reject(actorId, targetId, ReasonError, "服务繁忙，请稍后重试")
	}

	created, err := s.repos.Friendship.InsertPending(actorId, targetId)
	if err != nil {
		zap.L().Error(err.Error())
		return reject(actorId, targetId, ReasonError, "服务繁忙，请稍后重试")
	}
	if !created {
		return reject(actorId, targetId, ReasonDuplicate, "已存在申请或已是好友")
	}

	outcome := &Outcome{
		Ok:      true,
		ActorId: actorId,
		PeerId:  target.Uuid,
	}

	// 申请方资料与对端待处理数用于 incoming 通知，失败不影响申请本身
	if actor, err := s.repos.User.FindByUuid(actorId); err == nil {
		outcome.ActorUser = toSummary(actor)
	} else {
		zap.L().Error(err.Error())
	}
	if count, err := s.repos.Friendship.CountPendingByTarget(targetId); err == nil {
		outcome.PendingCount = count
	} else {
		zap.L().Error(err.Error())
	}

	s.invalidateSets(actorId, targetId)
	return outcome
}

// AcceptRequest 接受好友申请
// 写入是单条条件 UPDATE：只有 requesterId 发起的待处理申请存在时才
// 会命中，申请已被撤回/拒绝/处理时影响行数为 0，返回 no_request。
func (s *Service) AcceptRequest(actorId, requesterId string) *Outcome {
	accepted, err := s.repos.Friendship.AcceptPending(requesterId, actorId)
	if err != nil {
		zap.L().Error(err.Error())
		return reject(actorId, requesterId, ReasonError, "服务繁忙，请稍后重试")
	}
	if !accepted {
		return reject(actorId, requesterId, ReasonNoRequest, "申请不存在或已被处理")
	}

	outcome := &Outcome{
		Ok:      true,
		ActorId: actorId,
		PeerId:  requesterId,
	}
	if actor, err := s.repos.User.FindByUuid(actorId); err == nil {
		outcome.ActorUser = toSummary(actor)
	} else {
		zap.L().Error(err.Error())
	}
	if peer, err := s.repos.User.FindByUuid(requesterId); err == nil {
		outcome.PeerUser = toSummary(peer)
	} else {
		zap.L().Error(err.Error())
	}

	s.invalidateSets(actorId, requesterId)
	return outcome
}

// Unfriend 解除好友关系
func (s *Service) Unfriend(actorId, peerId string) *Outcome {
	deleted, err := s.repos.Friendship.DeleteFriendship(actorId, peerId)
	if err != nil {
		zap.L().Error(err.Error())
		return reject(actorId, peerId, ReasonError, "服务繁忙，请稍后重试")
	}
	if !deleted {
		return reject(actorId, peerId, ReasonNoFriend, "好友关系不存在")
	}

	s.invalidateSets(actorId, peerId)
	return &Outcome{
		Ok:      true,
		ActorId: actorId,
		PeerId:  peerId,
	}
}

// CancelRequest 撤回自己发出的申请
func (s *Service) CancelRequest(actorId, targetId string) error {
	deleted, err := s.repos.Friendship.DeletePending(actorId, targetId)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if !deleted {
		return errorx.New(errorx.CodeNoSuchRequest, "申请不存在或已被处理")
	}
	s.invalidateSets(actorId, targetId)
	return nil
}

// DeclineRequest 拒绝收到的申请
func (s *Service) DeclineRequest(actorId, requesterId string) error {
	deleted, err := s.repos.Friendship.DeletePending(requesterId, actorId)
	if err != nil {
		zap.L().Error(err.Error())
		return errorx.ErrServerBusy
	}
	if !deleted {
		return errorx.New(errorx.CodeNoSuchRequest, "申请不存在或已被撤回")
	}
	s.invalidateSets(actorId, requesterId)
	return nil
}

// ListSets 获取 friends/incoming/outgoing 三个投影集合
// 三个集合互斥：一条边按 Status 与 RequesterId 恰好落入一个集合
func (s *Service) ListSets(ownerId string) (*respond.FriendSetsRespond, error) {
	key := setsCacheKey(ownerId)
	cached, err := s.cache.Get(context.Background(), key)
	if err != nil {
		zap.L().Error(err.Error())
	} else if cached != "" {
		var rsp respond.FriendSetsRespond
		if err := json.Unmarshal([]byte(cached), &rsp); err == nil {
			return &rsp, nil
		}
	}

	friendEdges, err := s.repos.Friendship.FindFriends(ownerId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	outgoingEdges, err := s.repos.Friendship.FindPendingByRequester(ownerId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	incomingEdges, err := s.repos.Friendship.FindPendingByTarget(ownerId)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	// 一次批量查询取出全部对端资料
	peerIds := make([]string, 0, len(friendEdges)+len(outgoingEdges)+len(incomingEdges))
	for i := range friendEdges {
		peerIds = append(peerIds, friendEdges[i].PeerOf(ownerId))
	}
	for i := range outgoingEdges {
		peerIds = append(peerIds, outgoingEdges[i].PeerOf(ownerId))
	}
	for i := range incomingEdges {
		peerIds = append(peerIds, incomingEdges[i].PeerOf(ownerId))
	}
	users, err := s.repos.User.FindByUuids(peerIds)
	if err != nil {
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}
	userByUuid := make(map[string]*model.UserInfo, len(users))
	for i := range users {
		userByUuid[users[i].Uuid] = &users[i]
	}

	collect := func(edges []model.FriendEdge) []respond.GetUserListRespond {
		list := make([]respond.GetUserListRespond, 0, len(edges))
		for i := range edges {
			if user, ok := userByUuid[edges[i].PeerOf(ownerId)]; ok {
				list = append(list, *toSummary(user))
			}
		}
		return list
	}

	rsp := &respond.FriendSetsRespond{
		Friends:      collect(friendEdges),
		Incoming:     collect(incomingEdges),
		Outgoing:     collect(outgoingEdges),
		PendingCount: int64(len(incomingEdges)),
	}

	// 异步回填缓存
	if rspBytes, err := json.Marshal(rsp); err == nil {
		s.cache.SubmitTask(func() {
			if err := s.cache.Set(context.Background(), key, string(rspBytes), time.Minute*constants.REDIS_TIMEOUT); err != nil {
				zap.L().Error("Redis set friend sets cache failed", zap.Error(err))
			}
		})
	}
	return rsp, nil
}

// RelationOf 探测与某个用户之间的关系
// 返回 none / outgoing / incoming / friends 之一
func (s *Service) RelationOf(ownerId, peerId string) (*respond.RelationRespond, error) {
	rsp := &respond.RelationRespond{PeerId: peerId}

	edge, err := s.repos.Friendship.FindByPair(ownerId, peerId)
	if err != nil {
		if errorx.GetCode(err) == errorx.CodeNotFound {
			rsp.Relation = "none"
			return rsp, nil
		}
		zap.L().Error(err.Error())
		return nil, errorx.ErrServerBusy
	}

	switch {
	case edge.Status == edge_status_enum.Friends:
		rsp.Relation = "friends"
	case edge.RequesterId == ownerId:
		rsp.Relation = "outgoing"
	default:
		rsp.Relation = "incoming"
	}
	return rsp, nil
}

// IsFriend 判断两个用户是否为好友
// 转发消息前的服务端校验直接回源数据库：这是安全边界，
// 不能依赖可能过期的缓存或客户端自报的状态
func (s *Service) IsFriend(userId, peerId string) (bool, error) {
	return s.repos.Friendship.IsFriend(userId, peerId)
}
