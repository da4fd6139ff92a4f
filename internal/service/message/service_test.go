package message

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"chatlog_server/internal/dao/mysql"
	"chatlog_server/internal/dto/respond"
	"chatlog_server/internal/model"
	"chatlog_server/pkg/errorx"
)

// fakeMessageRepo 内存消息仓库
type fakeMessageRepo struct {
	messages []model.Message
	queries  int
}

func (r *fakeMessageRepo) Create(msg *model.Message) error {
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *fakeMessageRepo) FindByUserIds(a, b string) ([]model.Message, error) {
	r.queries++
	var out []model.Message
	for _, msg := range r.messages {
		if (msg.SendId == a && msg.ReceiveId == b) || (msg.SendId == b && msg.ReceiveId == a) {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) UpdateStatus(uuid int64, status int8) error { return nil }

func (r *fakeMessageRepo) FindPartnerIds(userId string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, msg := range r.messages {
		var partner string
		switch userId {
		case msg.SendId:
			partner = msg.ReceiveId
		case msg.ReceiveId:
			partner = msg.SendId
		default:
			continue
		}
		if _, ok := seen[partner]; !ok {
			seen[partner] = struct{}{}
			out = append(out, partner)
		}
	}
	return out, nil
}

// fakeUserRepo 内存用户仓库，只实现批量查询
type fakeUserRepo struct {
	users map[string]*model.UserInfo
}

func (r *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "user not found")
}
func (r *fakeUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	return nil, errorx.New(errorx.CodeNotFound, "user not found")
}
func (r *fakeUserRepo) FindAllExcept(excludeUuid string) ([]model.UserInfo, error) {
	return nil, nil
}
func (r *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	var out []model.UserInfo
	for _, uuid := range uuids {
		if user, ok := r.users[uuid]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}
func (r *fakeUserRepo) CreateUser(user *model.UserInfo) error     { return nil }
func (r *fakeUserRepo) UpdateUserInfo(user *model.UserInfo) error { return nil }

// fakeCache 内存缓存，SubmitTask 同步执行方便断言
type fakeCache struct {
	strings map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{strings: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.strings[key] = value
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	return c.strings[key], nil
}

func (c *fakeCache) GetOrError(ctx context.Context, key string) (string, error) {
	if v, ok := c.strings[key]; ok {
		return v, nil
	}
	return "", errorx.New(errorx.CodeNotFound, "not found")
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.strings, key)
	return nil
}

func (c *fakeCache) AddToSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}
func (c *fakeCache) GetSetMembers(ctx context.Context, key string) ([]string, error) {
	return nil, nil
}
func (c *fakeCache) RemoveFromSet(ctx context.Context, key string, members ...interface{}) error {
	return nil
}
func (c *fakeCache) SubmitTask(action func()) { action() }

func newTestService(repo *fakeMessageRepo, users *fakeUserRepo, cache *fakeCache) *messageService {
	if users == nil {
		users = &fakeUserRepo{users: make(map[string]*model.UserInfo)}
	}
	return NewMessageService(&mysql.Repositories{Message: repo, User: users}, cache)
}

func TestGetMessageListBackfillsCache(t *testing.T) {
	repo := &fakeMessageRepo{messages: []model.Message{
		{Model: gorm.Model{CreatedAt: time.Now()}, Uuid: 1, SendId: "A", ReceiveId: "B", Content: "hi"},
		{Model: gorm.Model{CreatedAt: time.Now()}, Uuid: 2, SendId: "B", ReceiveId: "A", Content: "yo"},
	}}
	cache := newFakeCache()
	svc := newTestService(repo, nil, cache)

	list, err := svc.GetMessageList("A", "B")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "hi", list[0].Content)
	assert.Equal(t, "1", list[0].Uuid)
	assert.Equal(t, 1, repo.queries)

	// 第二次查询命中缓存，不再回源
	again, err := svc.GetMessageList("B", "A")
	require.NoError(t, err)
	assert.Equal(t, list, again)
	assert.Equal(t, 1, repo.queries)
}

func TestPairCacheKeyIsOrderInsensitive(t *testing.T) {
	assert.Equal(t, PairCacheKey("A", "B"), PairCacheKey("B", "A"))
}

func TestAppendMessageCacheOnlyWhenPresent(t *testing.T) {
	cache := newFakeCache()
	msg := model.Message{Model: gorm.Model{CreatedAt: time.Now()}, Uuid: 3, SendId: "A", ReceiveId: "B", Content: "new"}

	// 缓存未命中时不写入，避免制造只有一条消息的假列表
	AppendMessageCache(cache, msg, ToListRespond(&msg))
	_, ok := cache.strings[PairCacheKey("A", "B")]
	assert.False(t, ok)

	// 缓存存在时追加到末尾
	existing, err := json.Marshal([]respond.GetMessageListRespond{
		{Uuid: "1", SendId: "B", ReceiveId: "A", Content: "old"},
	})
	require.NoError(t, err)
	cache.strings[PairCacheKey("A", "B")] = string(existing)

	AppendMessageCache(cache, msg, ToListRespond(&msg))

	var list []respond.GetMessageListRespond
	require.NoError(t, json.Unmarshal([]byte(cache.strings[PairCacheKey("A", "B")]), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[1].Content)
}

func TestGetChatPartners(t *testing.T) {
	repo := &fakeMessageRepo{messages: []model.Message{
		{Uuid: 1, SendId: "A", ReceiveId: "B", Content: "hi"},
		{Uuid: 2, SendId: "C", ReceiveId: "A", Content: "yo"},
		{Uuid: 3, SendId: "A", ReceiveId: "B", Content: "again"},
	}}
	users := &fakeUserRepo{users: map[string]*model.UserInfo{
		"B": {Uuid: "B", Username: "b@test.com", Nickname: "乙"},
		"C": {Uuid: "C", Username: "c@test.com", Nickname: "丙"},
	}}
	svc := newTestService(repo, users, newFakeCache())

	partners, err := svc.GetChatPartners("A")
	require.NoError(t, err)
	require.Len(t, partners, 2)
	got := map[string]bool{}
	for _, p := range partners {
		got[p.Uuid] = true
	}
	assert.True(t, got["B"] && got["C"])
}
