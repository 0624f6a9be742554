package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

var (
	ErrNotLoggedIn   = errors.New("please sign in first")
	ErrAdminRequired = errors.New("admin role required")
	ErrNoToken       = errors.New("sign-in response carried no token")
	ErrInvalidPlan   = errors.New("registration plan must be NORMAL or PREMIUM")
)

// base 所有领域服务共用的上游客户端和会话
type base struct {
	api  *client.Client
	sess *session.Session
}

func (b base) requireLogin(ctx context.Context) error {
	if !b.sess.IsLoggedIn(ctx) {
		return ErrNotLoggedIn
	}
	return nil
}

// requireAdmin 未登录优先返回 ErrNotLoggedIn
func (b base) requireAdmin(ctx context.Context) error {
	if err := b.requireLogin(ctx); err != nil {
		return err
	}
	if !b.sess.IsAdmin(ctx) {
		return ErrAdminRequired
	}
	return nil
}

// action 发起返回文本或 {"message": ...} 的写操作，返回提示文本
func (b base) action(ctx context.Context, method, path string, body interface{}) (string, error) {
	var raw string
	if err := b.api.Do(ctx, method, path, body, &raw); err != nil {
		return "", err
	}
	return parseMessage(raw), nil
}

// parseMessage 响应体是带 message 的 JSON 时取 message，否则原样返回
func parseMessage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var msg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(trimmed), &msg); err == nil && msg.Message != "" {
			return msg.Message
		}
	}
	return trimmed
}

// ErrorMessage 错误展示给用户的文本，上游错误取 message 字段
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		if msg := parseMessage(apiErr.Body); msg != "" {
			return msg
		}
	}
	return err.Error()
}
