package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senura-medagoda/UniMate-sub005/internal/model"
	"github.com/senura-medagoda/UniMate-sub005/internal/query"
	"github.com/senura-medagoda/UniMate-sub005/internal/service"
)

// Evaluation instant for all preset tests: a Wednesday mid-month.
var now = time.Date(2026, 3, 18, 14, 30, 0, 0, time.UTC)

func order(id string, placed time.Time, status model.Status, customer string, items ...model.OrderItem) *model.Order {
	first, last := customer, ""
	for i, r := range customer {
		if r == ' ' {
			first, last = customer[:i], customer[i+1:]
			break
		}
	}
	return &model.Order{
		ID:       id,
		Items:    items,
		Status:   status,
		Customer: model.Address{FirstName: first, LastName: last},
		PlacedAt: placed,
	}
}

func item(name, category string) model.OrderItem {
	return model.OrderItem{ProductName: name, Quantity: 1, UnitPrice: 10, Category: category}
}

func fixtures() []*model.Order {
	return []*model.Order{
		order("ord-a", now.Add(-2*time.Hour), model.StatusPlaced, "Nimal Perera", item("Rice & Curry", "Food")),
		order("ord-b", now.AddDate(0, 0, -1), model.StatusPacking, "Kasun Silva", item("Desk Lamp", "Electronics")),
		order("ord-c", now.AddDate(0, 0, -6), model.StatusShipped, "Amara Fernando", item("Hoodie", "Clothing")),
		order("ord-d", now.AddDate(0, 0, -12), model.StatusDelivered, "Nimal Perera", item("Textbook", "Books")),
		order("ord-e", now.AddDate(0, 0, -40), model.StatusDelivered, "Ruwan Jayasuriya", item("Kettle", "Electronics")),
	}
}

func ids(orders []*model.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestFilterEmptyCriteria(t *testing.T) {
	in := fixtures()

	got, err := query.FilterAt(in, query.Criteria{}, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"ord-a", "ord-b", "ord-c", "ord-d", "ord-e"}, ids(got))

	// Repeated application with the same criteria changes nothing.
	again, err := query.FilterAt(got, query.Criteria{}, now)
	require.NoError(t, err)
	assert.Equal(t, ids(got), ids(again))

	// The input slice itself is left alone.
	assert.Len(t, in, 5)
}

func TestFilterDimensions(t *testing.T) {
	t.Run("free text matches id, customer and item names", func(t *testing.T) {
		cases := []struct {
			search string
			want   []string
		}{
			{"ord-b", []string{"ord-b"}},
			{"nimal", []string{"ord-a", "ord-d"}},
			{"LAMP", []string{"ord-b"}},
			{"nothing matches this", nil},
		}
		for _, tc := range cases {
			got, err := query.FilterAt(fixtures(), query.Criteria{Search: tc.search}, now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sliceOrNil(ids(got)), "search %q", tc.search)
		}
	})

	t.Run("category membership over items", func(t *testing.T) {
		got, err := query.FilterAt(fixtures(), query.Criteria{Category: "electronics"}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-b", "ord-e"}, ids(got))
	})

	t.Run("status equality", func(t *testing.T) {
		got, err := query.FilterAt(fixtures(), query.Criteria{Status: model.StatusDelivered}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-d", "ord-e"}, ids(got))
	})

	t.Run("dimensions combine with AND", func(t *testing.T) {
		got, err := query.FilterAt(fixtures(), query.Criteria{
			Search: "nimal",
			Status: model.StatusDelivered,
		}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-d"}, ids(got))
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		_, err := query.FilterAt(fixtures(), query.Criteria{Status: "Vanished"}, now)
		assert.ErrorIs(t, err, service.ErrInvalidValue)
	})
}

func TestFilterDatePresets(t *testing.T) {
	t.Run("Today", func(t *testing.T) {
		got, err := query.FilterAt(fixtures(), query.Criteria{Preset: query.PresetToday}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-a"}, ids(got))
	})

	t.Run("Yesterday", func(t *testing.T) {
		got, err := query.FilterAt(fixtures(), query.Criteria{Preset: query.PresetYesterday}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-b"}, ids(got))
	})

	t.Run("Last7Days includes the day boundary", func(t *testing.T) {
		in := fixtures()
		// Placed at 00:00 exactly seven days back: still inside.
		boundary := order("ord-f", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), model.StatusPlaced, "Edge Case", item("Pen", "Stationery"))
		in = append(in, boundary)

		got, err := query.FilterAt(in, query.Criteria{Preset: query.PresetLast7}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-a", "ord-b", "ord-c", "ord-f"}, ids(got))
	})

	t.Run("Last30Days", func(t *testing.T) {
		got, err := query.FilterAt(fixtures(), query.Criteria{Preset: query.PresetLast30}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-a", "ord-b", "ord-c", "ord-d"}, ids(got))
	})

	t.Run("ThisMonth", func(t *testing.T) {
		got, err := query.FilterAt(fixtures(), query.Criteria{Preset: query.PresetThisMonth}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-a", "ord-b", "ord-c", "ord-d"}, ids(got))
	})

	t.Run("unknown preset rejected", func(t *testing.T) {
		_, err := query.FilterAt(fixtures(), query.Criteria{Preset: "Fortnight"}, now)
		assert.ErrorIs(t, err, service.ErrInvalidValue)
	})

	t.Run("explicit range, inclusive both ends", func(t *testing.T) {
		got, err := query.FilterAt(fixtures(), query.Criteria{
			From: time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
		}, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ord-b", "ord-c", "ord-d"}, ids(got))
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := query.FilterAt(fixtures(), query.Criteria{
			From: time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		}, now)
		assert.ErrorIs(t, err, service.ErrInvalidValue)
	})
}

func sliceOrNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}
