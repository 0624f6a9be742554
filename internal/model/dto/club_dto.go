package dto

import "github.com/ridecircle/ridecircle_client/internal/model"

type ClubRequest struct {
	Name        string `json:"name" binding:"required"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	City        string `json:"city"`
}

func ClubRequestFrom(club *model.Club) ClubRequest {
	return ClubRequest{
		Name:        club.Name,
		Brand:       club.Brand,
		Description: club.Description,
		City:        club.City,
	}
}

type TripRequest struct {
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	StartLocation string          `json:"startLocation"`
	EndLocation   string          `json:"endLocation"`
	StartTime     model.LocalTime `json:"startTime"`
	TripType      string          `json:"tripType"`
}

func TripRequestFrom(trip *model.Trip) TripRequest {
	return TripRequest{
		Title:         trip.Title,
		Description:   trip.Description,
		StartLocation: trip.StartLocation,
		EndLocation:   trip.EndLocation,
		StartTime:     trip.StartTime,
		TripType:      trip.TripType,
	}
}

type TripRegistrationRequest struct {
	TripID int64  `json:"tripId" binding:"required"`
	UserID int64  `json:"userId"`
	Plan   string `json:"plan,omitempty"`
}

type ReviewRequest struct {
	TripID  int64  `json:"tripId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
