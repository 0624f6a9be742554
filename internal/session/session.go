package session

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/pkg/jwt"
)

const (
	KeyAuthToken = "authToken"
	KeyUserRoles = "userRoles"
)

// Session 当前用户的令牌和角色，显式传递，不做全局单例
type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

func (s *Session) Store() Store {
	return s.store
}

// GetToken 没有令牌或读取失败时返回空串
func (s *Session) GetToken(ctx context.Context) string {
	tok, ok, err := s.store.Get(ctx, KeyAuthToken)
	if err != nil {
		log.Printf("session: read token failed: %v", err)
		return ""
	}
	if !ok {
		return ""
	}
	return tok
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	return s.store.Set(ctx, KeyAuthToken, token)
}

// SetUserRoles 以 JSON 数组保存
func (s *Session) SetUserRoles(ctx context.Context, roles []string) error {
	raw, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, KeyUserRoles, string(raw))
}

// UserRoles 缺失或格式错误时返回 nil
func (s *Session) UserRoles(ctx context.Context) []string {
	raw, ok, err := s.store.Get(ctx, KeyUserRoles)
	if err != nil {
		log.Printf("session: read roles failed: %v", err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var roles []string
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		return nil
	}
	return roles
}

// ClearUserData 登出时删除令牌和角色
func (s *Session) ClearUserData(ctx context.Context) error {
	return s.store.Delete(ctx, KeyAuthToken, KeyUserRoles)
}

func (s *Session) IsLoggedIn(ctx context.Context) bool {
	return s.GetToken(ctx) != ""
}

// IsAdmin 每次都重新读取角色，不缓存
func (s *Session) IsAdmin(ctx context.Context) bool {
	for _, r := range s.UserRoles(ctx) {
		if r == model.RoleAdmin {
			return true
		}
	}
	return false
}

// Claims 仅用于展示，不验签
func (s *Session) Claims(ctx context.Context) *jwt.Claims {
	tok := s.GetToken(ctx)
	if tok == "" {
		return nil
	}
	claims, err := jwt.Decode(tok)
	if err != nil {
		return nil
	}
	return claims
}

// Username 优先取令牌中的用户名
func (s *Session) Username(ctx context.Context) string {
	return s.Claims(ctx).Username()
}
