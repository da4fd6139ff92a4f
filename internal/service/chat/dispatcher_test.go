package chat

import (
	"encoding/json"
	"testing"

	"chatlog_server/internal/dto/respond"
	"chatlog_server/internal/service/relationship"
)

func newTestDispatcher(relationships *stubRelationships) (*Dispatcher, *PresenceRegistry) {
	registry := NewPresenceRegistry()
	relay := NewMessageRelay(registry, newStubMessageRepo(), relationships, newStubCache())
	relay.genId = func() int64 { return 1 }
	return NewDispatcher(registry, relationships, relay), registry
}

func envelopeOf(t *testing.T, event string, payload interface{}) []byte {
	t.Helper()
	frame, err := NewEnvelope(event, payload)
	if err != nil {
		t.Fatalf("构造信封失败: %v", err)
	}
	return frame
}

// readFrame 取出一条推送并解析信封
func readFrame(t *testing.T, conn *UserConn) Envelope {
	t.Helper()
	select {
	case mb := <-conn.SendBack:
		var envelope Envelope
		if err := json.Unmarshal(mb.Message, &envelope); err != nil {
			t.Fatalf("推送帧无法解析: %v", err)
		}
		return envelope
	default:
		t.Fatalf("期望收到推送但通道为空")
		return Envelope{}
	}
}

func assertNoFrame(t *testing.T, conn *UserConn) {
	t.Helper()
	select {
	case mb := <-conn.SendBack:
		t.Fatalf("不应收到推送: %s", mb.Message)
	default:
	}
}

func TestDispatchFriendRequestSendTargetOffline(t *testing.T) {
	relationships := &stubRelationships{
		sendFn: func(actorId, targetId string) *relationship.Outcome {
			return &relationship.Outcome{
				Ok:           true,
				ActorId:      actorId,
				PeerId:       targetId,
				ActorUser:    &respond.GetUserListRespond{Uuid: actorId, Nickname: "阿甲"},
				PendingCount: 1,
			}
		},
	}
	dispatcher, registry := newTestDispatcher(relationships)

	actor := NewUserConn(nil, "A", 4)
	registry.Register("A", actor)
	// B 不在线

	dispatcher.Dispatch(actor, envelopeOf(t, EventFriendRequestSend, map[string]string{"to": "B"}))

	envelope := readFrame(t, actor)
	if envelope.Event != EventFriendRequestAck {
		t.Fatalf("操作方应收到 ack, got %s", envelope.Event)
	}
	var ack respond.FriendRequestAckRespond
	if err := json.Unmarshal(envelope.Data, &ack); err != nil || ack.To != "B" {
		t.Fatalf("ack 载荷不正确: %s", envelope.Data)
	}
}

func TestDispatchFriendRequestSendNotifiesTarget(t *testing.T) {
	relationships := &stubRelationships{
		sendFn: func(actorId, targetId string) *relationship.Outcome {
			return &relationship.Outcome{
				Ok:           true,
				ActorId:      actorId,
				PeerId:       targetId,
				ActorUser:    &respond.GetUserListRespond{Uuid: actorId, Nickname: "阿甲"},
				PendingCount: 3,
			}
		},
	}
	dispatcher, registry := newTestDispatcher(relationships)

	actor := NewUserConn(nil, "A", 4)
	target := NewUserConn(nil, "B", 4)
	registry.Register("A", actor)
	registry.Register("B", target)

	dispatcher.Dispatch(actor, envelopeOf(t, EventFriendRequestSend, map[string]string{"to": "B"}))

	if envelope := readFrame(t, actor); envelope.Event != EventFriendRequestAck {
		t.Fatalf("操作方应收到 ack, got %s", envelope.Event)
	}

	envelope := readFrame(t, target)
	if envelope.Event != EventFriendRequestIncoming {
		t.Fatalf("对端应收到 incoming, got %s", envelope.Event)
	}
	var incoming respond.FriendRequestIncomingRespond
	if err := json.Unmarshal(envelope.Data, &incoming); err != nil {
		t.Fatalf("incoming 载荷无法解析: %v", err)
	}
	if incoming.FromUser.Uuid != "A" || incoming.PendingCount != 3 {
		t.Fatalf("incoming 载荷不正确: %+v", incoming)
	}
}

func TestDispatchFriendRequestDuplicate(t *testing.T) {
	relationships := &stubRelationships{
		sendFn: func(actorId, targetId string) *relationship.Outcome {
			return &relationship.Outcome{
				Ok:      false,
				Reason:  relationship.ReasonDuplicate,
				Detail:  "已存在申请或已是好友",
				ActorId: actorId,
				PeerId:  targetId,
			}
		},
	}
	dispatcher, registry := newTestDispatcher(relationships)

	actor := NewUserConn(nil, "A", 4)
	target := NewUserConn(nil, "B", 4)
	registry.Register("A", actor)
	registry.Register("B", target)

	dispatcher.Dispatch(actor, envelopeOf(t, EventFriendRequestSend, map[string]string{"to": "B"}))

	envelope := readFrame(t, actor)
	if envelope.Event != EventFriendRequestFailure {
		t.Fatalf("重复申请应推送 failure, got %s", envelope.Event)
	}
	var failure respond.FriendRequestFailureRespond
	if err := json.Unmarshal(envelope.Data, &failure); err != nil || failure.Reason != relationship.ReasonDuplicate {
		t.Fatalf("failure 载荷不正确: %s", envelope.Data)
	}

	// 领域拒绝只通知操作方
	assertNoFrame(t, target)
}

func TestDispatchAcceptNotifiesBothSides(t *testing.T) {
	relationships := &stubRelationships{
		acceptFn: func(actorId, requesterId string) *relationship.Outcome {
			return &relationship.Outcome{
				Ok:        true,
				ActorId:   actorId,
				PeerId:    requesterId,
				ActorUser: &respond.GetUserListRespond{Uuid: actorId, Nickname: "乙"},
				PeerUser:  &respond.GetUserListRespond{Uuid: requesterId, Nickname: "甲"},
			}
		},
	}
	dispatcher, registry := newTestDispatcher(relationships)

	requester := NewUserConn(nil, "A", 4)
	acceptor := NewUserConn(nil, "B", 4)
	registry.Register("A", requester)
	registry.Register("B", acceptor)

	dispatcher.Dispatch(acceptor, envelopeOf(t, EventFriendAccept, map[string]string{"from": "A"}))

	selfAck := readFrame(t, acceptor)
	if selfAck.Event != EventFriendAcceptedSelfAck {
		t.Fatalf("接受方应收到 selfAck, got %s", selfAck.Event)
	}
	var selfPayload respond.FriendAcceptedRespond
	if err := json.Unmarshal(selfAck.Data, &selfPayload); err != nil || selfPayload.PeerUser.Uuid != "A" {
		t.Fatalf("selfAck 中的 peer 应为申请方: %s", selfAck.Data)
	}

	peerAck := readFrame(t, requester)
	if peerAck.Event != EventFriendAcceptedPeerAck {
		t.Fatalf("申请方应收到 peerAck, got %s", peerAck.Event)
	}
	var peerPayload respond.FriendAcceptedRespond
	if err := json.Unmarshal(peerAck.Data, &peerPayload); err != nil || peerPayload.PeerUser.Uuid != "B" {
		t.Fatalf("peerAck 中的 peer 应为接受方: %s", peerAck.Data)
	}
}

func TestDispatchAcceptNoSuchRequest(t *testing.T) {
	relationships := &stubRelationships{
		acceptFn: func(actorId, requesterId string) *relationship.Outcome {
			return &relationship.Outcome{
				Ok:      false,
				Reason:  relationship.ReasonNoRequest,
				Detail:  "申请不存在或已被处理",
				ActorId: actorId,
				PeerId:  requesterId,
			}
		},
	}
	dispatcher, registry := newTestDispatcher(relationships)

	acceptor := NewUserConn(nil, "B", 4)
	registry.Register("B", acceptor)

	dispatcher.Dispatch(acceptor, envelopeOf(t, EventFriendAccept, map[string]string{"from": "A"}))

	envelope := readFrame(t, acceptor)
	if envelope.Event != EventFriendAcceptFailure {
		t.Fatalf("应推送 acceptFailure, got %s", envelope.Event)
	}
	var failure respond.AcceptFailureRespond
	if err := json.Unmarshal(envelope.Data, &failure); err != nil {
		t.Fatalf("载荷无法解析: %v", err)
	}
	if failure.Reason != relationship.ReasonNoRequest || failure.SubjectId != "A" {
		t.Fatalf("acceptFailure 载荷不正确: %+v", failure)
	}
}

func TestDispatchUnfriendAcksBothSides(t *testing.T) {
	relationships := &stubRelationships{
		unfriendFn: func(actorId, peerId string) *relationship.Outcome {
			return &relationship.Outcome{Ok: true, ActorId: actorId, PeerId: peerId}
		},
	}
	dispatcher, registry := newTestDispatcher(relationships)

	actor := NewUserConn(nil, "A", 4)
	peer := NewUserConn(nil, "B", 4)
	registry.Register("A", actor)
	registry.Register("B", peer)

	dispatcher.Dispatch(actor, envelopeOf(t, EventUnfriend, map[string]string{"to": "B"}))

	actorAck := readFrame(t, actor)
	var actorPayload respond.UnfriendAckRespond
	if actorAck.Event != EventUnfriendAck {
		t.Fatalf("操作方应收到 unfriendAck, got %s", actorAck.Event)
	}
	if err := json.Unmarshal(actorAck.Data, &actorPayload); err != nil || actorPayload.PeerId != "B" {
		t.Fatalf("操作方视角的 peer_id 应为 B: %s", actorAck.Data)
	}

	peerAck := readFrame(t, peer)
	var peerPayload respond.UnfriendAckRespond
	if err := json.Unmarshal(peerAck.Data, &peerPayload); err != nil || peerPayload.PeerId != "A" {
		t.Fatalf("对端视角的 peer_id 应为 A: %s", peerAck.Data)
	}
}

func TestDispatchUnfriendNoSuchFriend(t *testing.T) {
	relationships := &stubRelationships{
		unfriendFn: func(actorId, peerId string) *relationship.Outcome {
			return &relationship.Outcome{
				Ok:      false,
				Reason:  relationship.ReasonNoFriend,
				ActorId: actorId,
				PeerId:  peerId,
			}
		},
	}
	dispatcher, registry := newTestDispatcher(relationships)

	actor := NewUserConn(nil, "A", 4)
	registry.Register("A", actor)

	dispatcher.Dispatch(actor, envelopeOf(t, EventUnfriend, map[string]string{"to": "B"}))

	envelope := readFrame(t, actor)
	if envelope.Event != EventUnfriendFailure {
		t.Fatalf("应推送 unfriendFailure, got %s", envelope.Event)
	}
	var failure respond.UnfriendFailureRespond
	if err := json.Unmarshal(envelope.Data, &failure); err != nil || failure.Reason != relationship.ReasonNoFriend {
		t.Fatalf("failure 载荷不正确: %s", envelope.Data)
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	dispatcher, registry := newTestDispatcher(&stubRelationships{})
	actor := NewUserConn(nil, "A", 4)
	registry.Register("A", actor)

	dispatcher.Dispatch(actor, []byte(`{"event":"nonsense","data":{}}`))
	dispatcher.Dispatch(actor, []byte(`not json`))

	assertNoFrame(t, actor)
}
