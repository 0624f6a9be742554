package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

// TripTypes 行程表单可选的类型
var TripTypes = []string{
	model.TripWeekendGetaway,
	model.TripOneDayRide,
	model.TripMultiDayTour,
	model.TripCharityRide,
}

type TripService struct {
	base
}

func NewTripService(api *client.Client, sess *session.Session) *TripService {
	return &TripService{base{api: api, sess: sess}}
}

func (s *TripService) List(ctx context.Context) ([]model.Trip, error) {
	var trips []model.Trip
	if err := s.api.Get(ctx, "/trips", &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (s *TripService) Get(ctx context.Context, id int64) (*model.Trip, error) {
	var trip model.Trip
	if err := s.api.Get(ctx, fmt.Sprintf("/trips/%d", id), &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

// CreateForClub 行程必须挂在某个俱乐部下
func (s *TripService) CreateForClub(ctx context.Context, clubID int64, req dto.TripRequest) (*model.Trip, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	var trip model.Trip
	if err := s.api.Post(ctx, fmt.Sprintf("/clubs/%d/trips", clubID), req, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *TripService) Update(ctx context.Context, id int64, req dto.TripRequest) (*model.Trip, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	var trip model.Trip
	if err := s.api.Put(ctx, fmt.Sprintf("/trips/%d", id), req, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *TripService) Delete(ctx context.Context, id int64) error {
	if err := s.requireAdmin(ctx); err != nil {
		return err
	}
	return s.api.Delete(ctx, fmt.Sprintf("/trips/%d", id), nil)
}

// NormalizePlan 空值取 NORMAL，大小写不敏感
func NormalizePlan(plan string) (string, error) {
	plan = strings.ToUpper(strings.TrimSpace(plan))
	switch plan {
	case "":
		return model.RegistrationNormal, nil
	case model.RegistrationNormal, model.RegistrationPremium:
		return plan, nil
	default:
		return "", ErrInvalidPlan
	}
}

func (s *TripService) Register(ctx context.Context, id int64, plan string) (string, error) {
	if err := s.requireLogin(ctx); err != nil {
		return "", err
	}
	plan, err := NormalizePlan(plan)
	if err != nil {
		return "", err
	}
	path := fmt.Sprintf("/trips/%d/register?%s", id, url.Values{"plan": {plan}}.Encode())
	return s.action(ctx, http.MethodPost, path, nil)
}

func (s *TripService) Unregister(ctx context.Context, id int64) (string, error) {
	if err := s.requireLogin(ctx); err != nil {
		return "", err
	}
	return s.action(ctx, http.MethodDelete, fmt.Sprintf("/trips/%d/unregister", id), nil)
}

func (s *TripService) MyTrips(ctx context.Context) ([]model.Trip, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	var trips []model.Trip
	if err := s.api.Get(ctx, "/trips/my-trips", &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

// IsRegistered 未登录时视为未报名
func (s *TripService) IsRegistered(ctx context.Context, id int64) (bool, error) {
	if !s.sess.IsLoggedIn(ctx) {
		return false, nil
	}
	var registered bool
	if err := s.api.Get(ctx, fmt.Sprintf("/trips/%d/is-registered", id), &registered); err != nil {
		return false, err
	}
	return registered, nil
}

func (s *TripService) RegistrationCount(ctx context.Context, id int64) (int64, error) {
	var count int64
	if err := s.api.Get(ctx, fmt.Sprintf("/trips/%d/registration-count", id), &count); err != nil {
		return 0, err
	}
	return count, nil
}
