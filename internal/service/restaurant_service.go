package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/ridecircle/ridecircle_client/internal/client"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/session"
)

type RestaurantService struct {
	base
}

func NewRestaurantService(api *client.Client, sess *session.Session) *RestaurantService {
	return &RestaurantService{base{api: api, sess: sess}}
}

func (s *RestaurantService) list(ctx context.Context, path string) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	if err := s.api.Get(ctx, path, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (s *RestaurantService) List(ctx context.Context) ([]model.Restaurant, error) {
	return s.list(ctx, "/restaurants")
}

func (s *RestaurantService) Get(ctx context.Context, id int64) (*model.Restaurant, error) {
	var r model.Restaurant
	if err := s.api.Get(ctx, fmt.Sprintf("/restaurants/%d", id), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RestaurantService) ByCity(ctx context.Context, city string) ([]model.Restaurant, error) {
	return s.list(ctx, "/restaurants/city/"+url.PathEscape(city))
}

func (s *RestaurantService) ByCuisine(ctx context.Context, cuisine string) ([]model.Restaurant, error) {
	return s.list(ctx, "/restaurants/cuisine/"+url.PathEscape(cuisine))
}

func (s *RestaurantService) Vegetarian(ctx context.Context) ([]model.Restaurant, error) {
	return s.list(ctx, "/restaurants/vegetarian")
}

func (s *RestaurantService) Delivery(ctx context.Context) ([]model.Restaurant, error) {
	return s.list(ctx, "/restaurants/delivery")
}

func (s *RestaurantService) Search(ctx context.Context, query string) ([]model.Restaurant, error) {
	return s.list(ctx, "/restaurants/search?"+url.Values{"query": {query}}.Encode())
}

// Filter 按 城市 > 菜系 > 关键字 > 素食 > 外卖 的顺序取第一个条件
func (s *RestaurantService) Filter(ctx context.Context, f dto.RestaurantFilter) ([]model.Restaurant, error) {
	switch {
	case strings.TrimSpace(f.City) != "":
		return s.ByCity(ctx, strings.TrimSpace(f.City))
	case strings.TrimSpace(f.Cuisine) != "":
		return s.ByCuisine(ctx, strings.TrimSpace(f.Cuisine))
	case strings.TrimSpace(f.Query) != "":
		return s.Search(ctx, strings.TrimSpace(f.Query))
	case f.Vegetarian:
		return s.Vegetarian(ctx)
	case f.Delivery:
		return s.Delivery(ctx)
	default:
		return s.List(ctx)
	}
}
