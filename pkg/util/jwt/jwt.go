// Package jwt 封装双 Token 的签发与校验
// Access Token 短期有效用于接口认证；Refresh Token 长期有效，
// 携带 TokenID 与 Redis 中的记录比对，实现单点互踢
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer         = "chatlog"
	SubjectAccess  = "access_token"
	SubjectRefresh = "refresh_token"
)

var (
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
)

// Init 初始化签名密钥与有效期，应在程序启动时调用一次
func Init(signSecret string, accessExpiryMinutes, refreshExpiryHours int) {
	secret = []byte(signSecret)
	accessExpiry = time.Duration(accessExpiryMinutes) * time.Minute
	refreshExpiry = time.Duration(refreshExpiryHours) * time.Hour
}

// Claims 自定义 JWT 声明
type Claims struct {
	UserID  string `json:"user_id"`
	TokenID string `json:"token_id,omitempty"` // 仅 Refresh Token 携带
	jwt.RegisteredClaims
}

func newClaims(userID, subject string, ttl time.Duration) Claims {
	now := time.Now()
	return Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subject,
		},
	}
}

// GenerateAccessToken 签发 Access Token
func GenerateAccessToken(userID string) (string, error) {
	claims := newClaims(userID, SubjectAccess, accessExpiry)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// GenerateRefreshToken 签发 Refresh Token
// 返回的 tokenID 由调用方写入 Redis，后续刷新时比对
func GenerateRefreshToken(userID string) (tokenString string, tokenID string, err error) {
	tokenID = uuid.NewString()
	claims := newClaims(userID, SubjectRefresh, refreshExpiry)
	claims.TokenID = tokenID
	tokenString, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	return
}

// ParseToken 解析并校验 Token
// 限定 HS256，拒绝算法替换攻击
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}
