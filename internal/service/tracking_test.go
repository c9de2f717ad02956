package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senura-medagoda/UniMate-sub005/internal/repository"
	"github.com/senura-medagoda/UniMate-sub005/internal/service"
)

func TestRecordLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("latest snapshot wins, stale write rejected", func(t *testing.T) {
		repo := newFakeRepo()
		orders := service.NewOrderService(repo)
		tracker := service.NewTrackerService(repo)
		ord := placeOrder(t, orders, defaultItems())

		t1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
		t2 := t1.Add(10 * time.Minute)
		t3 := t1.Add(20 * time.Minute)

		require.NoError(t, tracker.RecordLocation(ctx, operator, ord.ID, 6.9271, 79.8612, t1))
		require.NoError(t, tracker.RecordLocation(ctx, operator, ord.ID, 6.9344, 79.8500, t2))
		require.NoError(t, tracker.RecordLocation(ctx, operator, ord.ID, 6.9400, 79.8420, t3))

		last, err := tracker.LastLocation(ctx, ord.ID)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, 6.9400, last.Lat)
		assert.Equal(t, 79.8420, last.Lng)
		assert.True(t, last.UpdatedAt.Equal(t3))

		// A delayed observation from between t2 and t3 must not regress
		// the displayed position.
		t25 := t1.Add(15 * time.Minute)
		err = tracker.RecordLocation(ctx, operator, ord.ID, 6.9500, 79.8300, t25)
		assert.ErrorIs(t, err, repository.ErrStaleUpdate)

		last, err = tracker.LastLocation(ctx, ord.ID)
		require.NoError(t, err)
		assert.Equal(t, 6.9400, last.Lat)
		assert.True(t, last.UpdatedAt.Equal(t3))

		// Every accepted snapshot stays in the history.
		got, err := orders.GetByID(ctx, ord.ID)
		require.NoError(t, err)
		assert.Len(t, got.Tracking, 3)
	})

	t.Run("coordinate bounds", func(t *testing.T) {
		repo := newFakeRepo()
		orders := service.NewOrderService(repo)
		tracker := service.NewTrackerService(repo)
		ord := placeOrder(t, orders, defaultItems())
		now := time.Now()

		cases := []struct {
			name     string
			lat, lng float64
		}{
			{"lat above 90", 90.1, 0},
			{"lat below -90", -90.1, 0},
			{"lng above 180", 0, 180.1},
			{"lng below -180", 0, -180.1},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				err := tracker.RecordLocation(ctx, operator, ord.ID, tc.lat, tc.lng, now)
				assert.ErrorIs(t, err, service.ErrInvalidValue)
			})
		}

		// Bounds themselves are valid.
		require.NoError(t, tracker.RecordLocation(ctx, operator, ord.ID, 90, -180, now))
	})

	t.Run("zero observation time rejected", func(t *testing.T) {
		repo := newFakeRepo()
		orders := service.NewOrderService(repo)
		tracker := service.NewTrackerService(repo)
		ord := placeOrder(t, orders, defaultItems())

		err := tracker.RecordLocation(ctx, operator, ord.ID, 1, 1, time.Time{})
		assert.ErrorIs(t, err, service.ErrInvalidValue)
	})

	t.Run("unknown order", func(t *testing.T) {
		tracker := service.NewTrackerService(newFakeRepo())
		err := tracker.RecordLocation(ctx, operator, "missing", 1, 1, time.Now())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("unauthenticated principal", func(t *testing.T) {
		tracker := service.NewTrackerService(newFakeRepo())
		err := tracker.RecordLocation(ctx, service.Principal{}, "any", 1, 1, time.Now())
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}

func TestStaleness(t *testing.T) {
	ctx := context.Background()

	t.Run("never tracked", func(t *testing.T) {
		repo := newFakeRepo()
		orders := service.NewOrderService(repo)
		tracker := service.NewTrackerService(repo)
		ord := placeOrder(t, orders, defaultItems())

		_, known, err := tracker.Staleness(ctx, ord.ID)
		require.NoError(t, err)
		assert.False(t, known)
	})

	t.Run("age since last snapshot", func(t *testing.T) {
		repo := newFakeRepo()
		orders := service.NewOrderService(repo)
		tracker := service.NewTrackerService(repo)
		ord := placeOrder(t, orders, defaultItems())

		observed := time.Now().UTC().Add(-5 * time.Minute)
		require.NoError(t, tracker.RecordLocation(ctx, operator, ord.ID, 6.9, 79.8, observed))

		age, known, err := tracker.Staleness(ctx, ord.ID)
		require.NoError(t, err)
		assert.True(t, known)
		assert.GreaterOrEqual(t, age, 5*time.Minute)
		assert.Less(t, age, 6*time.Minute)
	})

	t.Run("unknown order", func(t *testing.T) {
		tracker := service.NewTrackerService(newFakeRepo())
		_, _, err := tracker.Staleness(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
