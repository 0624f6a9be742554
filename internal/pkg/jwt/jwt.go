package jwt

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Claims 服务端签发的令牌载荷，客户端只读不验签
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Username 服务端把用户名放在 sub 中
func (c *Claims) Username() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

// ExpiredAt 判断令牌在给定时间是否已过期，没有 exp 视为不过期
func (c *Claims) ExpiredAt(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// Decode 解析令牌载荷，不校验签名和有效期
func Decode(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Validate 解析并检查有效期
func Validate(tokenString string, now time.Time) (*Claims, error) {
	claims, err := Decode(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.ExpiredAt(now) {
		return claims, ErrExpiredToken
	}
	return claims, nil
}
