package model

type Food struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Cuisine      string `json:"cuisine"`
	ImageURL     string `json:"imageUrl"`
	IsVegetarian bool   `json:"isVegetarian"`
	IsVegan      bool   `json:"isVegan"`
	IsSpicy      bool   `json:"isSpicy"`
	IsSelected   bool   `json:"isSelected"` // 当前用户是否已选
}
