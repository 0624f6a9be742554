package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ridecircle/ridecircle_client/internal/app"
	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
)

type scenario struct {
	username string
	password string
	clubID   int64
	tripID   int64
}

type step struct {
	name string
	fn   func(ctx context.Context, a *app.App) error
}

// run 依次执行各步骤，遇到第一个失败即停止
func (s scenario) run(ctx context.Context, a *app.App) error {
	for i, st := range s.steps() {
		start := time.Now()
		if err := st.fn(ctx, a); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, st.name, err)
		}
		log.Printf("[%d] %s ok (%s)", i+1, st.name, time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func (s scenario) steps() []step {
	return []step{
		{"list trips", func(ctx context.Context, a *app.App) error {
			trips, err := a.Trips.List(ctx)
			if err != nil {
				return err
			}
			log.Printf("    %d trips", len(trips))
			return nil
		}},
		{"list restaurants", func(ctx context.Context, a *app.App) error {
			_, err := a.Restaurants.List(ctx)
			return err
		}},
		{"sign in", func(ctx context.Context, a *app.App) error {
			resp, err := a.Auth.SignIn(ctx, s.username, s.password)
			if err != nil {
				return err
			}
			log.Printf("    signed in as %s %v", resp.Username, resp.Roles)
			return nil
		}},
		{"list clubs", func(ctx context.Context, a *app.App) error {
			clubs, err := a.Clubs.List(ctx)
			if err != nil {
				return err
			}
			if len(clubs) == 0 {
				return fmt.Errorf("no clubs returned")
			}
			return nil
		}},
		{"join club", func(ctx context.Context, a *app.App) error {
			msg, err := a.Clubs.Join(ctx, s.clubID)
			log.Printf("    %s", msg)
			return err
		}},
		{"leave club", func(ctx context.Context, a *app.App) error {
			msg, err := a.Clubs.Leave(ctx, s.clubID)
			log.Printf("    %s", msg)
			return err
		}},
		{"register for trip", func(ctx context.Context, a *app.App) error {
			_, err := a.Trips.Register(ctx, s.tripID, model.RegistrationNormal)
			return err
		}},
		{"unregister from trip", func(ctx context.Context, a *app.App) error {
			_, err := a.Trips.Unregister(ctx, s.tripID)
			return err
		}},
		{"book restaurant", func(ctx context.Context, a *app.App) error {
			restaurants, err := a.Restaurants.List(ctx)
			if err != nil {
				return err
			}
			if len(restaurants) == 0 {
				return fmt.Errorf("no restaurants returned")
			}
			booking, err := a.Bookings.Create(ctx, dto.BookingRequest{
				RestaurantID:        restaurants[0].ID,
				ReservationDateTime: model.NewLocalTime(time.Now().Add(48 * time.Hour).Truncate(time.Minute)),
				NumberOfGuests:      2,
				SpecialRequests:     "smoke test",
			})
			if err != nil {
				return err
			}
			log.Printf("    booking %s", booking.ConfirmationCode)
			return a.Bookings.Delete(ctx, booking.ID)
		}},
		{"subscription state", func(ctx context.Context, a *app.App) error {
			if err := a.Subscriptions.Init(ctx); err != nil {
				return err
			}
			view := a.Subscriptions.Snapshot()
			log.Printf("    %d plans, active=%t, days remaining=%d", len(view.Plans), view.Active, view.DaysRemaining)
			return nil
		}},
	}
}
