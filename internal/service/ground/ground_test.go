package ground

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mani1234567sk/backend-dream/internal/domain"
	"github.com/mani1234567sk/backend-dream/internal/testutil"
	"github.com/mani1234567sk/backend-dream/pkg/database"
)

func newService(t *testing.T) (*GroundService, *testutil.Store) {
	t.Helper()

	store := testutil.NewStore(testutil.NewClock())
	return NewGroundService(store.Grounds(), store.Reviews(), database.NopTransactionManager{}, testutil.Logger()), store
}

func TestCreateGround(t *testing.T) {
	svc, _ := newService(t)

	g, err := svc.CreateGround(context.Background(), domain.CreateGroundRequest{
		Name:         " Riverside   Arena ",
		Location:     "North Bank",
		PricePerHour: 45,
		Features:     []string{"Floodlights", " parking ", "floodlights", ""},
	})
	require.NoError(t, err)

	assert.Equal(t, "Riverside Arena", g.Name)
	assert.True(t, g.IsAvailable)
	assert.Equal(t, []string{"Floodlights", "parking"}, g.Features)
	assert.Zero(t, g.ReviewCount)
}

func TestCreateGround_Validation(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name string
		req  domain.CreateGroundRequest
	}{
		{"zero price", domain.CreateGroundRequest{Name: "Arena", Location: "North", PricePerHour: 0}},
		{"negative price", domain.CreateGroundRequest{Name: "Arena", Location: "North", PricePerHour: -5}},
		{"blank name", domain.CreateGroundRequest{Name: " ", Location: "North", PricePerHour: 10}},
		{"blank location", domain.CreateGroundRequest{Name: "Arena", Location: "", PricePerHour: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGround(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestUpdateAndListGrounds(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	north := store.AddGround(t, "North Field", 20, true)
	store.AddGround(t, "South Field", 30, true)

	unavailable := false
	price := 25.5
	updated, err := svc.UpdateGround(ctx, north.ID, domain.UpdateGroundRequest{IsAvailable: &unavailable, PricePerHour: &price})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)
	assert.Equal(t, 25.5, updated.PricePerHour)

	available, err := svc.ListGrounds(ctx, true)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "South Field", available[0].Name)

	all, err := svc.ListGrounds(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	zero := 0.0
	_, err = svc.UpdateGround(ctx, north.ID, domain.UpdateGroundRequest{PricePerHour: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateGround(ctx, uuid.NewString(), domain.UpdateGroundRequest{PricePerHour: &price})
	assert.ErrorIs(t, err, domain.ErrGroundNotFound)
}

func TestDeleteGround(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	g := store.AddGround(t, "Arena", 20, true)

	require.NoError(t, svc.DeleteGround(ctx, g.ID))
	assert.ErrorIs(t, svc.DeleteGround(ctx, g.ID), domain.ErrGroundNotFound)
}

func TestAddReview_UpdatesRating(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	g := store.AddGround(t, "Arena", 20, true)
	alice := store.AddUser(t, "Alice", "alice@example.com")
	bob := store.AddUser(t, "Bob", "bob@example.com")

	_, err := svc.AddReview(ctx, g.ID, alice.ID, domain.CreateReviewRequest{Rating: 5, Comment: "great pitch"})
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, g.ID, bob.ID, domain.CreateReviewRequest{Rating: 2})
	require.NoError(t, err)

	got, err := svc.GetGround(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReviewCount)
	assert.InDelta(t, 3.5, got.AverageRating, 1e-9)

	reviews, err := svc.ListReviews(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Bob", reviews[0].UserName)

	_, err = svc.AddReview(ctx, g.ID, alice.ID, domain.CreateReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, domain.ErrReviewExists)

	got, err = svc.GetGround(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ReviewCount)
}

func TestAddReview_Rejections(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	g := store.AddGround(t, "Arena", 20, true)
	user := store.AddUser(t, "Alice", "alice@example.com")

	for _, rating := range []int{0, 6} {
		_, err := svc.AddReview(ctx, g.ID, user.ID, domain.CreateReviewRequest{Rating: rating})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "rating %d", rating)
	}

	_, err := svc.AddReview(ctx, uuid.NewString(), user.ID, domain.CreateReviewRequest{Rating: 3})
	assert.ErrorIs(t, err, domain.ErrGroundNotFound)

	_, err = svc.ListReviews(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrGroundNotFound)
}
