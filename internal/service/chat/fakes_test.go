package chat

import (
	"context"
	"sync"
	"time"

	"chatlog_server/internal/dto/respond"
	"chatlog_server/internal/model"
	"chatlog_server/internal/service/relationship"
	"chatlog_server/pkg/errorx"
)

var errNotFound = errorx.New(errorx.CodeNotFound, "not found")

// stubMessageRepo 内存消息仓库
type stubMessageRepo struct {
	mu       sync.Mutex
	messages []model.Message
	statuses map[int64]int8
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{statuses: make(map[int64]int8)}
}

func (r *stubMessageRepo) Create(msg *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.CreatedAt = time.Now()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *stubMessageRepo) FindByUserIds(a, b string) ([]model.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Message
	for _, msg := range r.messages {
		if (msg.SendId == a && msg.ReceiveId == b) || (msg.SendId == b && msg.ReceiveId == a) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) UpdateStatus(uuid int64, status int8) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[uuid] = status
	return nil
}

func (r *stubMessageRepo) FindPartnerIds(userId string) ([]string, error) {
	return nil, nil
}

// stubRelationships 可配置的关系状态机桩
type stubRelationships struct {
	sendFn     func(actorId, targetId string) *relationship.Outcome
	acceptFn   func(actorId, requesterId string) *relationship.Outcome
	unfriendFn func(actorId, peerId string) *relationship.Outcome
	isFriendFn func(userId, peerId string) (bool, error)
}

func (s *stubRelationships) SendRequest(actorId, targetId string) *relationship.Outcome {
	return s.sendFn(actorId, targetId)
}

func (s *stubRelationships) AcceptRequest(actorId, requesterId string) *relationship.Outcome {
	return s.acceptFn(actorId, requesterId)
}

func (s *stubRelationships) Unfriend(actorId, peerId string) *relationship.Outcome {
	return s.unfriendFn(actorId, peerId)
}

func (s *stubRelationships) CancelRequest(actorId, targetId string) error  { return nil }
func (s *stubRelationships) DeclineRequest(actorId, peerId string) error   { return nil }
func (s *stubRelationships) IsFriend(userId, peerId string) (bool, error) {
	if s.isFriendFn != nil {
		return s.isFriendFn(userId, peerId)
	}
	return true, nil
}

func (s *stubRelationships) ListSets(ownerId string) (*respond.FriendSetsRespond, error) {
	return &respond.FriendSetsRespond{}, nil
}

func (s *stubRelationships) RelationOf(ownerId, peerId string) (*respond.RelationRespond, error) {
	return &respond.RelationRespond{PeerId: peerId, Relation: "none"}, nil
}

// stubCache 内存缓存，SubmitTask 同步执行方便断言
type stubCache struct {
	mu      sync.Mutex
	strings map[string]string
	sets    map[string]map[string]struct{}
}

func newStubCache() *stubCache {
	return &stubCache{
		strings: make(map[string]string),
		sets:    make(map[string]map[string]struct{}),
	}
}

func (c *stubCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.strings[key] = value
	return nil
}

func (c *stubCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strings[key], nil
}

func (c *stubCache) GetOrError(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.strings[key]; ok {
		return v, nil
	}
	return "", errNotFound
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.strings, key)
	delete(c.sets, key)
	return nil
}

func (c *stubCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.sets[key]
	if !ok {
		set = make(map[string]struct{})
		c.sets[key] = set
	}
	for _, m := range members {
		set[m.(string)] = struct{}{}
	}
	return nil
}

func (c *stubCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for m := range c.sets[key] {
		out = append(out, m)
	}
	return out, nil
}

func (c *stubCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range members {
		delete(c.sets[key], m.(string))
	}
	return nil
}

func (c *stubCache) SubmitTask(action func()) {
	action()
}
