// Package chat 实现实时层的核心服务
// dispatcher.go
// 核心职责：解析事件信封，调用状态机/转发器，把 Outcome 映射为出站推送
package chat

import (
	"encoding/json"

	"go.uber.org/zap"

	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/dto/respond"
	"chatlog_server/internal/service"
	"chatlog_server/internal/service/relationship"
)

// Dispatcher 事件调度器
// 状态机只返回 Outcome，不直接接触连接；由调度器决定每个 Outcome
// 产生哪些推送、发给谁。领域拒绝只通知操作方，对端收到的通知
// 无条件应用（对端没有需要回滚的乐观状态）。
type Dispatcher struct {
	registry      *PresenceRegistry
	relationships service.RelationshipService
	relay         *MessageRelay
}

// NewDispatcher 创建事件调度器
func NewDispatcher(registry *PresenceRegistry, relationships service.RelationshipService, relay *MessageRelay) *Dispatcher {
	return &Dispatcher{
		registry:      registry,
		relationships: relationships,
		relay:         relay,
	}
}

// Dispatch 处理一条入站事件
// 由连接的读协程逐条调用：同一连接的事件严格按到达顺序处理，
// 不同连接之间并发执行
func (d *Dispatcher) Dispatch(client *UserConn, raw []byte) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		zap.L().Warn("无法解析事件信封", zap.String("uuid", client.Uuid), zap.Error(err))
		return
	}

	switch envelope.Event {
	case EventMessageSend:
		d.handleMessageSend(client, envelope.Data)
	case EventFriendRequestSend:
		d.handleFriendRequestSend(client, envelope.Data)
	case EventFriendAccept:
		d.handleFriendAccept(client, envelope.Data)
	case EventUnfriend:
		d.handleUnfriend(client, envelope.Data)
	default:
		zap.L().Warn("未知事件", zap.String("event", envelope.Event), zap.String("uuid", client.Uuid))
	}
}

// handleMessageSend 处理 message.send
func (d *Dispatcher) handleMessageSend(client *UserConn, data json.RawMessage) {
	var req request.MessageSendRequest
	if err := json.Unmarshal(data, &req); err != nil || req.To == "" || req.Text == "" {
		zap.L().Warn("message.send 载荷无效", zap.String("uuid", client.Uuid))
		return
	}
	if err := d.relay.Relay(client.Uuid, req); err != nil {
		// 协议中没有消息发送失败事件，记录后丢弃
		zap.L().Error("消息转发失败", zap.String("send_id", client.Uuid), zap.Error(err))
	}
}

// handleFriendRequestSend 处理 friendRequest.send
func (d *Dispatcher) handleFriendRequestSend(client *UserConn, data json.RawMessage) {
	var req request.FriendRequestSendRequest
	if err := json.Unmarshal(data, &req); err != nil || req.To == "" {
		d.pushConn(client, EventFriendRequestFailure, respond.FriendRequestFailureRespond{
			Reason: relationship.ReasonError,
			Detail: "请求载荷无效",
		})
		return
	}

	outcome := d.relationships.SendRequest(client.Uuid, req.To)
	if !outcome.Ok {
		d.pushConn(client, EventFriendRequestFailure, respond.FriendRequestFailureRespond{
			Reason: outcome.Reason,
			Detail: outcome.Detail,
		})
		return
	}

	d.pushConn(client, EventFriendRequestAck, respond.FriendRequestAckRespond{To: outcome.PeerId})
	d.pushTo(outcome.PeerId, EventFriendRequestIncoming, respond.FriendRequestIncomingRespond{
		FromUser:     summaryOrStub(outcome.ActorUser, outcome.ActorId),
		PendingCount: outcome.PendingCount,
	})
}

// handleFriendAccept 处理 friendRequest.accept
func (d *Dispatcher) handleFriendAccept(client *UserConn, data json.RawMessage) {
	var req request.FriendRequestAcceptRequest
	if err := json.Unmarshal(data, &req); err != nil || req.From == "" {
		d.pushConn(client, EventFriendAcceptFailure, respond.AcceptFailureRespond{
			Reason: relationship.ReasonError,
			Detail: "请求载荷无效",
		})
		return
	}

	outcome := d.relationships.AcceptRequest(client.Uuid, req.From)
	if !outcome.Ok {
		d.pushConn(client, EventFriendAcceptFailure, respond.AcceptFailureRespond{
			Reason:    outcome.Reason,
			Detail:    outcome.Detail,
			SubjectId: outcome.PeerId,
		})
		return
	}

	// 接受方看到申请方的资料，申请方看到接受方的资料
	d.pushConn(client, EventFriendAcceptedSelfAck, respond.FriendAcceptedRespond{
		PeerUser: summaryOrStub(outcome.PeerUser, outcome.PeerId),
	})
	d.pushTo(outcome.PeerId, EventFriendAcceptedPeerAck, respond.FriendAcceptedRespond{
		PeerUser: summaryOrStub(outcome.ActorUser, outcome.ActorId),
	})
}

// handleUnfriend 处理 friend.unfriend
func (d *Dispatcher) handleUnfriend(client *UserConn, data json.RawMessage) {
	var req request.UnfriendRequest
	if err := json.Unmarshal(data, &req); err != nil || req.To == "" {
		d.pushConn(client, EventUnfriendFailure, respond.UnfriendFailureRespond{
			Reason: relationship.ReasonError,
		})
		return
	}

	outcome := d.relationships.Unfriend(client.Uuid, req.To)
	if !outcome.Ok {
		d.pushConn(client, EventUnfriendFailure, respond.UnfriendFailureRespond{
			Reason: outcome.Reason,
		})
		return
	}

	// 双方都收到确认，各自视角下的 peer_id 是对方
	d.pushConn(client, EventUnfriendAck, respond.UnfriendAckRespond{PeerId: outcome.PeerId})
	d.pushTo(outcome.PeerId, EventUnfriendAck, respond.UnfriendAckRespond{PeerId: outcome.ActorId})
}

// pushTo 按身份查找连接并推送，不在线时静默丢弃
func (d *Dispatcher) pushTo(uuid string, event string, payload interface{}) {
	conn := d.registry.Lookup(uuid)
	if conn == nil {
		zap.L().Debug("对端不在线，跳过推送", zap.String("uuid", uuid), zap.String("event", event))
		return
	}
	d.pushConn(conn, event, payload)
}

// pushConn 向指定连接推送一条事件
func (d *Dispatcher) pushConn(conn *UserConn, event string, payload interface{}) {
	frame, err := NewEnvelope(event, payload)
	if err != nil {
		zap.L().Error(err.Error())
		return
	}
	if !conn.Push(&MessageBack{Message: frame}) {
		zap.L().Warn("回写通道已满，丢弃推送", zap.String("uuid", conn.Uuid), zap.String("event", event))
	}
}

// summaryOrStub 资料查询失败时退化为只含 UUID 的摘要
func summaryOrStub(user *respond.GetUserListRespond, uuid string) respond.GetUserListRespond {
	if user != nil {
		return *user
	}
	return respond.GetUserListRespond{Uuid: uuid}
}
