package service

import (
	"context"
	"fmt"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

type BookingService struct {
	base
}

func NewBookingService(api *client.Client, sess *session.Session) *BookingService {
	return &BookingService{base{api: api, sess: sess}}
}

func (s *BookingService) Create(ctx context.Context, req dto.BookingRequest) (*model.RestaurantBooking, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	var booking model.RestaurantBooking
	if err := s.api.Post(ctx, "/restaurant-bookings", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) MyBookings(ctx context.Context) ([]model.RestaurantBooking, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	var bookings []model.RestaurantBooking
	if err := s.api.Get(ctx, "/restaurant-bookings/my-bookings", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingService) Get(ctx context.Context, id int64) (*model.RestaurantBooking, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	var booking model.RestaurantBooking
	if err := s.api.Get(ctx, fmt.Sprintf("/restaurant-bookings/%d", id), &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// Cancel 保留记录，只把状态改为 CANCELLED
func (s *BookingService) Cancel(ctx context.Context, id int64) (*model.RestaurantBooking, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	var booking model.RestaurantBooking
	if err := s.api.Put(ctx, fmt.Sprintf("/restaurant-bookings/%d/cancel", id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	if err := s.requireLogin(ctx); err != nil {
		return err
	}
	return s.api.Delete(ctx, fmt.Sprintf("/restaurant-bookings/%d", id), nil)
}
