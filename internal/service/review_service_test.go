package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridecircle/ridecircle_client/internal/model/dto"
	"github.com/ridecircle/ridecircle_client/internal/testutil"
)

func TestReviewService(t *testing.T) {
	_, api, sess := setupAPI(t)
	svc := NewReviewService(api, sess)
	ctx := context.Background()

	reviews, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	_, err = svc.Create(ctx, dto.ReviewRequest{TripID: 1, Rating: 4, Comment: "Great"})
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	loginAs(t, sess)
	created, err := svc.Create(ctx, dto.ReviewRequest{TripID: 1, Rating: 4, Comment: "Great"})
	require.NoError(t, err)
	assert.Equal(t, testutil.TestUsername, created.Username)
	assert.False(t, created.ReviewDate.IsZero())

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Great", got.Comment)

	require.NoError(t, svc.Delete(ctx, created.ID))
	reviews, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
