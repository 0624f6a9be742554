package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

type AuthService struct {
	base
}

func NewAuthService(api *client.Client, sess *session.Session) *AuthService {
	return &AuthService{base{api: api, sess: sess}}
}

// SignIn 登录并保存令牌和角色，覆盖已有会话
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*dto.AuthResponse, error) {
	req := dto.SignInRequest{Username: username, Password: password}

	var resp dto.AuthResponse
	if err := s.api.Post(ctx, "/auth/signin", req, &resp); err != nil {
		return nil, err
	}

	token := resp.BearerToken()
	if token == "" {
		return nil, ErrNoToken
	}

	if err := s.sess.SetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	if err := s.sess.SetUserRoles(ctx, resp.Roles); err != nil {
		return nil, fmt.Errorf("save roles: %w", err)
	}

	return &resp, nil
}

// SignUp 注册成功后不自动登录
func (s *AuthService) SignUp(ctx context.Context, req dto.SignUpRequest) (string, error) {
	return s.action(ctx, http.MethodPost, "/auth/signup", req)
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.sess.ClearUserData(ctx)
}

func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (string, error) {
	if err := s.requireLogin(ctx); err != nil {
		return "", err
	}
	return s.action(ctx, http.MethodPost, "/auth/reset-password", req)
}
