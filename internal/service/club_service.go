package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

type ClubService struct {
	base
}

func NewClubService(api *client.Client, sess *session.Session) *ClubService {
	return &ClubService{base{api: api, sess: sess}}
}

func (s *ClubService) List(ctx context.Context) ([]model.Club, error) {
	var clubs []model.Club
	if err := s.api.Get(ctx, "/clubs", &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

func (s *ClubService) Get(ctx context.Context, id int64) (*model.Club, error) {
	var club model.Club
	if err := s.api.Get(ctx, fmt.Sprintf("/clubs/%d", id), &club); err != nil {
		return nil, err
	}
	return &club, nil
}

func (s *ClubService) Create(ctx context.Context, req dto.ClubRequest) (*model.Club, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	var club model.Club
	if err := s.api.Post(ctx, "/clubs", req, &club); err != nil {
		return nil, err
	}
	return &club, nil
}

func (s *ClubService) Update(ctx context.Context, id int64, req dto.ClubRequest) (*model.Club, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	var club model.Club
	if err := s.api.Put(ctx, fmt.Sprintf("/clubs/%d", id), req, &club); err != nil {
		return nil, err
	}
	return &club, nil
}

func (s *ClubService) Delete(ctx context.Context, id int64) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	return s.api.Delete(ctx, fmt.Sprintf("/clubs/%d", id), nil)
}

// Join 返回服务端的提示文本
func (s *ClubService) Join(ctx context.Context, id int64) (string, error) {
	if err := s.requireLogin(ctx); err != nil {
		return "", err
	}
	return s.action(ctx, http.MethodPost, fmt.Sprintf("/clubs/%d/join", id), nil)
}

func (s *ClubService) Leave(ctx context.Context, id int64) (string, error) {
	if err := s.requireLogin(ctx); err != nil {
		return "", err
	}
	return s.action(ctx, http.MethodDelete, fmt.Sprintf("/clubs/%d/leave", id), nil)
}

func (s *ClubService) MyClubs(ctx context.Context) ([]model.Club, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	var clubs []model.Club
	if err := s.api.Get(ctx, "/clubs/my-clubs", &clubs); err != nil {
		return nil, err
	}
	return clubs, nil
}

// IsMember 未登录时视为非成员
func (s *ClubService) IsMember(ctx context.Context, id int64) (bool, error) {
	if !s.sess.IsLoggedIn(ctx) {
		return false, nil
	}
	var member bool
	if err := s.api.Get(ctx, fmt.Sprintf("/clubs/%d/is-member", id), &member); err != nil {
		return false, err
	}
	return member, nil
}
