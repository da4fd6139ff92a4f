package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlog_server/internal/dao/mysql"
	"chatlog_server/internal/dto/request"
	"chatlog_server/internal/model"
	"chatlog_server/pkg/errorx"
	"chatlog_server/pkg/util/jwt"
)

func TestMain(m *testing.M) {
	jwt.Init("test-secret", 15, 168)
	m.Run()
}

// fakeUserRepo 内存用户仓库，CreateUser 手动触发密码哈希 Hook
type fakeUserRepo struct {
	users map[string]*model.UserInfo
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.UserInfo)}
}

func (r *fakeUserRepo) FindByUuid(uuid string) (*model.UserInfo, error) {
	for _, user := range r.users {
		if user.Uuid == uuid {
			clone := *user
			return &clone, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "user not found")
}

func (r *fakeUserRepo) FindByUsername(username string) (*model.UserInfo, error) {
	if user, ok := r.users[username]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, errorx.New(errorx.CodeNotFound, "user not found")
}

func (r *fakeUserRepo) FindAllExcept(excludeUuid string) ([]model.UserInfo, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindByUuids(uuids []string) ([]model.UserInfo, error) {
	return nil, nil
}

func (r *fakeUserRepo) CreateUser(user *model.UserInfo) error {
	if err := user.BeforeSave(nil); err != nil {
		return err
	}
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepo) UpdateUserInfo(user *model.UserInfo) error {
	r.users[user.Username] = user
	return nil
}

// fakeCache 只实现认证服务用到的 String 操作
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

func newTestService() *Service {
	repos := &mysql.Repositories{User: newFakeUserRepo()}
	return NewAuthService(repos, newFakeCache())
}

func register(t *testing.T, svc *Service, username, password string) *request.RegisterRequest {
	t.Helper()
	req := request.RegisterRequest{Username: username, Password: password}
	_, err := svc.Register(req)
	require.NoError(t, err)
	return &req
}

func TestRegisterIssuesTokens(t *testing.T) {
	svc := newTestService()

	rsp, err := svc.Register(request.RegisterRequest{
		Username: "alice@test.com",
		Password: "secret123",
		Nickname: "爱丽丝",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rsp.AccessToken)
	assert.NotEmpty(t, rsp.RefreshToken)
	assert.Equal(t, "爱丽丝", rsp.Nickname)
	require.NotEmpty(t, rsp.Uuid)
	assert.Equal(t, byte('U'), rsp.Uuid[0])

	// 双 Token 主体正确
	claims, err := jwt.ParseToken(rsp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access_token", claims.Subject)
	assert.Equal(t, rsp.Uuid, claims.UserID)
}

func TestRegisterDefaultsNicknameToUsername(t *testing.T) {
	svc := newTestService()
	rsp, err := svc.Register(request.RegisterRequest{Username: "bob@test.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "bob@test.com", rsp.Nickname)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestService()
	register(t, svc, "alice@test.com", "secret123")

	_, err := svc.Register(request.RegisterRequest{Username: "alice@test.com", Password: "other456"})
	assert.Equal(t, errorx.CodeUserExist, errorx.GetCode(err))
}

func TestLogin(t *testing.T) {
	svc := newTestService()
	register(t, svc, "alice@test.com", "secret123")

	rsp, err := svc.Login(request.LoginRequest{Username: "alice@test.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, rsp.AccessToken)
	assert.NotEmpty(t, rsp.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService()
	register(t, svc, "alice@test.com", "secret123")

	_, err := svc.Login(request.LoginRequest{Username: "alice@test.com", Password: "wrong"})
	assert.Equal(t, errorx.CodeInvalidPassword, errorx.GetCode(err))
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService()
	_, err := svc.Login(request.LoginRequest{Username: "nobody@test.com", Password: "x"})
	assert.Equal(t, errorx.CodeUserNotExist, errorx.GetCode(err))
}

func TestRefreshTokenRotation(t *testing.T) {
	svc := newTestService()

	registerRsp, err := svc.Register(request.RegisterRequest{Username: "alice@test.com", Password: "secret123"})
	require.NoError(t, err)

	refreshRsp, err := svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: registerRsp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshRsp.AccessToken)

	// TokenID 已旋转，旧 Refresh Token 立即失效
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: registerRsp.RefreshToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))

	// 新 Refresh Token 可以继续使用
	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: refreshRsp.RefreshToken})
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc := newTestService()
	registerRsp, err := svc.Register(request.RegisterRequest{Username: "alice@test.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: registerRsp.AccessToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestLogoutInvalidatesRefresh(t *testing.T) {
	svc := newTestService()
	registerRsp, err := svc.Register(request.RegisterRequest{Username: "alice@test.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(registerRsp.Uuid))

	_, err = svc.RefreshToken(request.RefreshTokenRequest{RefreshToken: registerRsp.RefreshToken})
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}
