package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridecircle/ridecircle_client/internal/model"
	"github.com/ridecircle/ridecircle_client/internal/model/dto"
)

func TestNormalizePlan(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", model.RegistrationNormal, false},
		{"normal", model.RegistrationNormal, false},
		{" PREMIUM ", model.RegistrationPremium, false},
		{"gold", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizePlan(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPlan)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestTripService_RegisterUnregister(t *testing.T) {
	fake, api, sess := setupAPI(t)
	loginAs(t, sess)
	svc := NewTripService(api, sess)
	ctx := context.Background()

	msg, err := svc.Register(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Successfully registered for the trip!", msg)

	last := fake.LastRequest()
	assert.Equal(t, "/api/trips/1/register", last.Path)
	assert.Equal(t, "plan=NORMAL", last.RawQuery)

	registered, err := svc.IsRegistered(ctx, 1)
	require.NoError(t, err)
	assert.True(t, registered)

	count, err := svc.RegistrationCount(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	mine, err := svc.MyTrips(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	msg, err = svc.Unregister(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Successfully unregistered from the trip!", msg)

	_, ok := fake.RegistrationPlan(1)
	assert.False(t, ok)
}

func TestTripService_RegisterPremiumAndInvalid(t *testing.T) {
	fake, api, sess := setupAPI(t)
	loginAs(t, sess)
	svc := NewTripService(api, sess)
	ctx := context.Background()

	_, err := svc.Register(ctx, 2, "premium")
	require.NoError(t, err)
	plan, ok := fake.RegistrationPlan(2)
	require.True(t, ok)
	assert.Equal(t, model.RegistrationPremium, plan)

	before := len(fake.Requests())
	_, err = svc.Register(ctx, 1, "vip")
	assert.ErrorIs(t, err, ErrInvalidPlan)
	assert.Len(t, fake.Requests(), before)
}

func TestTripService_Anonymous(t *testing.T) {
	_, api, sess := setupAPI(t)
	svc := NewTripService(api, sess)
	ctx := context.Background()

	trips, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, 2030, trips[0].StartTime.Year())
	require.NotNil(t, trips[0].OrganizingClub)

	registered, err := svc.IsRegistered(ctx, 1)
	require.NoError(t, err)
	assert.False(t, registered)

	_, err = svc.Register(ctx, 1, "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.MyTrips(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestTripService_AdminCRUD(t *testing.T) {
	fake, api, sess := setupAPI(t)
	fake.SetRoles(model.RoleAdmin)
	svc := NewTripService(api, sess)
	ctx := context.Background()

	start := time.Date(2031, 3, 1, 9, 0, 0, 0, time.Local)
	req := dto.TripRequest{
		Title: "Coastal Cruise", StartLocation: "Monterey", EndLocation: "Big Sur",
		StartTime: model.NewLocalTime(start), TripType: model.TripWeekendGetaway,
	}

	loginAs(t, sess, model.RoleUser)
	_, err := svc.CreateForClub(ctx, 1, req)
	assert.ErrorIs(t, err, ErrAdminRequired)

	loginAs(t, sess, model.RoleAdmin)
	trip, err := svc.CreateForClub(ctx, 1, req)
	require.NoError(t, err)
	assert.Equal(t, "/api/clubs/1/trips", fake.LastRequest().Path)
	assert.Contains(t, fake.LastRequest().Body, `"startTime":"2031-03-01T09:00:00"`)
	assert.True(t, trip.StartTime.Equal(start))
	require.NotNil(t, trip.OrganizingClub)
	assert.Equal(t, int64(1), trip.OrganizingClub.ID)

	req.Title = "Coastal Cruise II"
	updated, err := svc.Update(ctx, trip.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Coastal Cruise II", updated.Title)

	require.NoError(t, svc.Delete(ctx, trip.ID))
	assert.Equal(t, "DELETE", fake.LastRequest().Method)
}
