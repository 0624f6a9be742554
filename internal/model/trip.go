package model

const (
	TripWeekendGetaway = "WEEKEND_GETAWAY"
	TripOneDayRide     = "ONE_DAY_RIDE"
	TripMultiDayTour   = "MULTI_DAY_TOUR"
	TripCharityRide    = "CHARITY_RIDE"
)

const (
	RegistrationNormal  = "NORMAL"
	RegistrationPremium = "PREMIUM"
)

type Trip struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	StartLocation  string    `json:"startLocation"`
	EndLocation    string    `json:"endLocation"`
	StartTime      LocalTime `json:"startTime"`
	TripType       string    `json:"tripType"`
	OrganizingClub *Club     `json:"organizingClub,omitempty"`
}

type TripRegistration struct {
	ID               int64     `json:"id"`
	TripID           int64     `json:"tripId"`
	TripTitle        string    `json:"tripTitle,omitempty"`
	UserID           int64     `json:"userId"`
	Username         string    `json:"username,omitempty"`
	Plan             string    `json:"plan,omitempty"`
	RegistrationDate LocalTime `json:"registrationDate"`
}
