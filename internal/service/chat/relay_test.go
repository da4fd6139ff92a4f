package chat

import (
	"encoding/json"
	"testing"

	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/dto/respond"
	"chatlog_server/pkg/enum/message/message_status_enum"
	"chatlog_server/pkg/errorx"
)

func newTestRelay(repo *stubMessageRepo, relationships *stubRelationships) (*MessageRelay, *PresenceRegistry) {
	registry := NewPresenceRegistry()
	relay := NewMessageRelay(registry, repo, relationships, newStubCache())
	var nextId int64
	relay.genId = func() int64 {
		nextId++
		return nextId
	}
	return relay, registry
}

func TestRelayPersistsWhenReceiverOffline(t *testing.T) {
	repo := newStubMessageRepo()
	relay, _ := newTestRelay(repo, &stubRelationships{})

	err := relay.Relay("A", request.MessageSendRequest{To: "B", Text: "hi"})
	if err != nil {
		t.Fatalf("接收方离线时转发不应报错: %v", err)
	}

	if len(repo.messages) != 1 {
		t.Fatalf("消息应落库, got %d", len(repo.messages))
	}
	msg := repo.messages[0]
	if msg.SendId != "A" || msg.ReceiveId != "B" || msg.Content != "hi" {
		t.Fatalf("落库内容不正确: %+v", msg)
	}
	if msg.Status != message_status_enum.Unsent {
		t.Fatalf("未推送的消息状态应为未发送")
	}
}

func TestRelayPushesToReceiverOnly(t *testing.T) {
	repo := newStubMessageRepo()
	relay, registry := newTestRelay(repo, &stubRelationships{})

	sender := NewUserConn(nil, "A", 4)
	receiver := NewUserConn(nil, "B", 4)
	registry.Register("A", sender)
	registry.Register("B", receiver)

	if err := relay.Relay("A", request.MessageSendRequest{To: "B", Text: "hello"}); err != nil {
		t.Fatalf("转发失败: %v", err)
	}

	select {
	case mb := <-receiver.SendBack:
		var envelope Envelope
		if err := json.Unmarshal(mb.Message, &envelope); err != nil {
			t.Fatalf("推送帧无法解析: %v", err)
		}
		if envelope.Event != EventMessageReceive {
			t.Fatalf("事件名应为 %s, got %s", EventMessageReceive, envelope.Event)
		}
		var payload respond.MessageReceiveRespond
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			t.Fatalf("载荷无法解析: %v", err)
		}
		if payload.From != "A" || payload.Text != "hello" {
			t.Fatalf("载荷不正确: %+v", payload)
		}
		if mb.Uuid == 0 {
			t.Fatalf("落库消息的推送帧应携带消息 Uuid")
		}
	default:
		t.Fatalf("接收方应收到推送")
	}

	select {
	case <-sender.SendBack:
		t.Fatalf("消息只推送给接收方，发送方不应收到")
	default:
	}
}

func TestRelayRejectsNonFriend(t *testing.T) {
	repo := newStubMessageRepo()
	relationships := &stubRelationships{
		isFriendFn: func(userId, peerId string) (bool, error) { return false, nil },
	}
	relay, _ := newTestRelay(repo, relationships)

	err := relay.Relay("A", request.MessageSendRequest{To: "B", Text: "hi"})
	if errorx.GetCode(err) != errorx.CodeNotFriend {
		t.Fatalf("非好友发送应返回 CodeNotFriend, got %v", err)
	}
	if len(repo.messages) != 0 {
		t.Fatalf("被拒绝的消息不应落库")
	}
}

func TestRelayPreservesSendOrder(t *testing.T) {
	repo := newStubMessageRepo()
	relay, _ := newTestRelay(repo, &stubRelationships{})

	texts := []string{"one", "two", "three"}
	for _, text := range texts {
		if err := relay.Relay("A", request.MessageSendRequest{To: "B", Text: text}); err != nil {
			t.Fatalf("转发失败: %v", err)
		}
	}

	got, _ := repo.FindByUserIds("A", "B")
	if len(got) != len(texts) {
		t.Fatalf("落库数量不正确: %d", len(got))
	}
	for i, text := range texts {
		if got[i].Content != text {
			t.Fatalf("落库顺序应与发送顺序一致, index %d got %s", i, got[i].Content)
		}
	}
}
