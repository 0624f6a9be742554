package service

import (
	"context"
	"fmt"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

type ReviewService struct {
	base
}

func NewReviewService(api *client.Client, sess *session.Session) *ReviewService {
	return &ReviewService{base{api: api, sess: sess}}
}

func (s *ReviewService) List(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	if err := s.api.Get(ctx, "/reviews", &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) Get(ctx context.Context, id int64) (*model.Review, error) {
	var review model.Review
	if err := s.api.Get(ctx, fmt.Sprintf("/reviews/%d", id), &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) Create(ctx context.Context, req dto.ReviewRequest) (*model.Review, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	var review model.Review
	if err := s.api.Post(ctx, "/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if err := s.requireLogin(ctx); err != nil {
		return err
	}
	return s.api.Delete(ctx, fmt.Sprintf("/reviews/%d", id), nil)
}
