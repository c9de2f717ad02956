// Package query composes operator-facing filters over an order snapshot.
// It is a pure function over the slice passed in and never touches
// storage, so views stay testable without a database.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/senura-medagoda/UniMate-sub005/internal/model"
	"github.com/senura-medagoda/UniMate-sub005/internal/service"
)

// DatePreset names a date window resolved at day granularity relative to
// the evaluation instant, inclusive on both ends.
type DatePreset string

const (
	PresetToday     DatePreset = "Today"
	PresetYesterday DatePreset = "Yesterday"
	PresetLast7     DatePreset = "Last7Days"
	PresetLast30    DatePreset = "Last30Days"
	PresetThisMonth DatePreset = "ThisMonth"
)

// Criteria are combined with logical AND; zero-valued dimensions are
// skipped. An explicit From/To window is ignored when Preset is set.
type Criteria struct {
	Search   string
	Category string
	Status   model.Status
	Preset   DatePreset
	From     time.Time
	To       time.Time
}

// Filter applies the criteria and returns the matches newest-first by
// placement time. Empty criteria return the whole input, sorted.
func Filter(orders []*model.Order, c Criteria) ([]*model.Order, error) {
	return FilterAt(orders, c, time.Now())
}

// FilterAt is Filter with an explicit evaluation instant for the date
// presets.
func FilterAt(orders []*model.Order, c Criteria, now time.Time) ([]*model.Order, error) {
	if c.Status != "" && !c.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", service.ErrInvalidValue, c.Status)
	}

	from, to, bounded, err := c.window(now)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]*model.Order, 0, len(orders))
	for _, o := range orders {
		if c.Status != "" && o.Status != c.Status {
			continue
		}
		if c.Category != "" && !hasCategory(o, c.Category) {
			continue
		}
		if search != "" && !matchesText(o, search) {
			continue
		}
		if bounded && (o.PlacedAt.Before(from) || o.PlacedAt.After(to)) {
			continue
		}
		out = append(out, o)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].PlacedAt.Equal(out[j].PlacedAt) {
			return out[i].PlacedAt.After(out[j].PlacedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// window resolves the criteria's date range. bounded is false when no
// preset and no explicit range was given.
func (c Criteria) window(now time.Time) (from, to time.Time, bounded bool, err error) {
	if c.Preset != "" {
		from, to, err = resolvePreset(c.Preset, now)
		return from, to, err == nil, err
	}
	if c.From.IsZero() && c.To.IsZero() {
		return time.Time{}, time.Time{}, false, nil
	}
	from = c.From
	to = c.To
	if from.IsZero() {
		from = time.Time{}
	} else {
		from = startOfDay(from)
	}
	if to.IsZero() {
		to = endOfDay(now.AddDate(100, 0, 0))
	} else {
		to = endOfDay(to)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, false,
			fmt.Errorf("%w: date range ends before it starts", service.ErrInvalidValue)
	}
	return from, to, true, nil
}

func resolvePreset(p DatePreset, now time.Time) (time.Time, time.Time, error) {
	switch p {
	case PresetToday:
		return startOfDay(now), endOfDay(now), nil
	case PresetYesterday:
		y := now.AddDate(0, 0, -1)
		return startOfDay(y), endOfDay(y), nil
	case PresetLast7:
		return startOfDay(now.AddDate(0, 0, -7)), endOfDay(now), nil
	case PresetLast30:
		return startOfDay(now.AddDate(0, 0, -30)), endOfDay(now), nil
	case PresetThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, endOfDay(now), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown date preset %q", service.ErrInvalidValue, p)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func hasCategory(o *model.Order, category string) bool {
	for _, it := range o.Items {
		if strings.EqualFold(it.Category, category) {
			return true
		}
	}
	return false
}

func matchesText(o *model.Order, search string) bool {
	if strings.Contains(strings.ToLower(o.ID), search) {
		return true
	}
	if strings.Contains(strings.ToLower(o.Customer.FullName()), search) {
		return true
	}
	for _, it := range o.Items {
		if strings.Contains(strings.ToLower(it.ProductName), search) {
			return true
		}
	}
	return false
}
