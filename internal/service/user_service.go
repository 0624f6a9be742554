package service

import (
	"context"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

type UserService struct {
	base
}

func NewUserService(api *client.Client, sess *session.Session) *UserService {
	return &UserService{base{api: api, sess: sess}}
}

// CurrentUser 获取当前登录用户
func (s *UserService) CurrentUser(ctx context.Context) (*model.User, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	var user model.User
	if err := s.api.Get(ctx, "/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
