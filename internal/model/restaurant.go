package model

type Restaurant struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Address              string  `json:"address"`
	City                 string  `json:"city"`
	State                string  `json:"state"`
	ZipCode              string  `json:"zipCode"`
	PhoneNumber          string  `json:"phoneNumber"`
	Email                string  `json:"email"`
	Website              string  `json:"website"`
	Cuisine              string  `json:"cuisine"`
	Rating               float64 `json:"rating"`
	ReviewCount          int     `json:"reviewCount"`
	ImageURL             string  `json:"imageUrl"`
	IsVegetarianFriendly bool    `json:"isVegetarianFriendly"`
	IsVeganFriendly      bool    `json:"isVeganFriendly"`
	HasDelivery          bool    `json:"hasDelivery"`
	HasTakeout           bool    `json:"hasTakeout"`
	AcceptsReservations  bool    `json:"acceptsReservations"`
}

type RestaurantBooking struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"userId"`
	Username            string    `json:"username"`
	RestaurantID        int64     `json:"restaurantId"`
	RestaurantName      string    `json:"restaurantName"`
	RestaurantAddress   string    `json:"restaurantAddress"`
	RestaurantCuisine   string    `json:"restaurantCuisine"`
	RestaurantImageURL  string    `json:"restaurantImageUrl"`
	ReservationDateTime LocalTime `json:"reservationDateTime"`
	NumberOfGuests      int       `json:"numberOfGuests"`
	SpecialRequests     string    `json:"specialRequests"`
	Status              string    `json:"status"`
	ConfirmationCode    string    `json:"confirmationCode"`
	CreatedAt           LocalTime `json:"createdAt"`
}
