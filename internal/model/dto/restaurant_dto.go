package dto

import "github.com/ridecircle/ridecircle_client/internal/model"

type BookingRequest struct {
	RestaurantID        int64           `json:"restaurantId" binding:"required"`
	ReservationDateTime model.LocalTime `json:"reservationDateTime"`
	NumberOfGuests      int             `json:"numberOfGuests" binding:"required,min=1"`
	SpecialRequests     string          `json:"specialRequests"`
}

type FoodRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Cuisine      string `json:"cuisine"`
	ImageURL     string `json:"imageUrl"`
	IsVegetarian bool   `json:"isVegetarian"`
	IsVegan      bool   `json:"isVegan"`
	IsSpicy      bool   `json:"isSpicy"`
}

// RestaurantFilter 餐厅列表筛选条件，只取第一个非空条件
type RestaurantFilter struct {
	City       string `form:"city"`
	Cuisine    string `form:"cuisine"`
	Query      string `form:"q"`
	Vegetarian bool   `form:"vegetarian"`
	Delivery   bool   `form:"delivery"`
}

// FoodFilter 菜品列表筛选条件，规则同 RestaurantFilter
type FoodFilter struct {
	Category   string `form:"category"`
	Cuisine    string `form:"cuisine"`
	Query      string `form:"q"`
	Vegetarian bool   `form:"vegetarian"`
	Vegan      bool   `form:"vegan"`
}
