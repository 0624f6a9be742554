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

type FoodService struct {
	base
}

func NewFoodService(api *client.Client, sess *session.Session) *FoodService {
	return &FoodService{base{api: api, sess: sess}}
}

func (s *FoodService) list(ctx context.Context, path string) ([]model.Food, error) {
	var foods []model.Food
	if err := s.api.Get(ctx, path, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

func (s *FoodService) names(ctx context.Context, path string) ([]string, error) {
	var out []string
	if err := s.api.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List 登录时服务端会标记 isSelected
func (s *FoodService) List(ctx context.Context) ([]model.Food, error) {
	return s.list(ctx, "/foods")
}

func (s *FoodService) Preferences(ctx context.Context) ([]model.Food, error) {
	if err := s.requireLogin(ctx); err != nil {
		return nil, err
	}
	return s.list(ctx, "/foods/preferences")
}

func (s *FoodService) Prefer(ctx context.Context, foodID int64) (string, error) {
	if err := s.requireLogin(ctx); err != nil {
		return "", err
	}
	return s.action(ctx, http.MethodPost, fmt.Sprintf("/foods/%d/prefer", foodID), nil)
}

func (s *FoodService) Unprefer(ctx context.Context, foodID int64) (string, error) {
	if err := s.requireLogin(ctx); err != nil {
		return "", err
	}
	return s.action(ctx, http.MethodDelete, fmt.Sprintf("/foods/%d/prefer", foodID), nil)
}

// SetPreferred 按当前状态切换偏好
func (s *FoodService) SetPreferred(ctx context.Context, foodID int64, preferred bool) (string, error) {
	if preferred {
		return s.Prefer(ctx, foodID)
	}
	return s.Unprefer(ctx, foodID)
}

func (s *FoodService) ByCategory(ctx context.Context, category string) ([]model.Food, error) {
	return s.list(ctx, "/foods/category/"+url.PathEscape(category))
}

func (s *FoodService) ByCuisine(ctx context.Context, cuisine string) ([]model.Food, error) {
	return s.list(ctx, "/foods/cuisine/"+url.PathEscape(cuisine))
}

func (s *FoodService) Search(ctx context.Context, name string) ([]model.Food, error) {
	return s.list(ctx, "/foods/search?"+url.Values{"name": {name}}.Encode())
}

func (s *FoodService) Categories(ctx context.Context) ([]string, error) {
	return s.names(ctx, "/foods/categories")
}

func (s *FoodService) Cuisines(ctx context.Context) ([]string, error) {
	return s.names(ctx, "/foods/cuisines")
}

func (s *FoodService) Vegetarian(ctx context.Context) ([]model.Food, error) {
	return s.list(ctx, "/foods/vegetarian")
}

func (s *FoodService) Vegan(ctx context.Context) ([]model.Food, error) {
	return s.list(ctx, "/foods/vegan")
}

// Filter 按 分类 > 菜系 > 关键字 > 素食 > 纯素 的顺序取第一个条件
func (s *FoodService) Filter(ctx context.Context, f dto.FoodFilter) ([]model.Food, error) {
	switch {
	case strings.TrimSpace(f.Category) != "":
		return s.ByCategory(ctx, strings.TrimSpace(f.Category))
	case strings.TrimSpace(f.Cuisine) != "":
		return s.ByCuisine(ctx, strings.TrimSpace(f.Cuisine))
	case strings.TrimSpace(f.Query) != "":
		return s.Search(ctx, strings.TrimSpace(f.Query))
	case f.Vegetarian:
		return s.Vegetarian(ctx)
	case f.Vegan:
		return s.Vegan(ctx)
	default:
		return s.List(ctx)
	}
}

// 管理员接口

func (s *FoodService) AdminList(ctx context.Context) ([]model.Food, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.list(ctx, "/admin/foods")
}

func (s *FoodService) AdminGet(ctx context.Context, id int64) (*model.Food, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	var food model.Food
	if err := s.api.Get(ctx, fmt.Sprintf("/admin/foods/%d", id), &food); err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) AdminCreate(ctx context.Context, req dto.FoodRequest) (*model.Food, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	var food model.Food
	if err := s.api.Post(ctx, "/admin/foods", req, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) AdminUpdate(ctx context.Context, id int64, req dto.FoodRequest) (*model.Food, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	var food model.Food
	if err := s.api.Put(ctx, fmt.Sprintf("/admin/foods/%d", id), req, &food); err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) AdminDelete(ctx context.Context, id int64) (string, error) {
	if err := s.requireAdmin(ctx); err != nil {
		return "", err
	}
	return s.action(ctx, http.MethodDelete, fmt.Sprintf("/admin/foods/%d", id), nil)
}
