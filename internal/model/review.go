package model

type Review struct {
	ID         int64     `json:"id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewDate LocalTime `json:"reviewDate"`
	Username   string    `json:"username"`
	TripID     int64     `json:"tripId"`
}
