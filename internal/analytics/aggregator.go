// Package analytics derives summary statistics from an order collection
// for the marketplace admin dashboard. Summarize is a pure function over
// the snapshot passed in.
package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/senura-medagoda/UniMate-sub005/internal/model"
)

// Window restricts aggregation to [From, To] at day granularity, both
// ends inclusive. A zero bound means unbounded on that side.
type Window struct {
	From time.Time
	To   time.Time
}

// CacheKey is a stable identifier for the window, used to key cached
// summaries.
func (w Window) CacheKey() string {
	from, to := "all", "all"
	if !w.From.IsZero() {
		from = w.From.Format("2006-01-02")
	}
	if !w.To.IsZero() {
		to = w.To.Format("2006-01-02")
	}
	return fmt.Sprintf("%s_%s", from, to)
}

func (w Window) contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(startOfDay(w.From)) {
		return false
	}
	if !w.To.IsZero() && t.After(endOfDay(w.To)) {
		return false
	}
	return true
}

type MonthBucket struct {
	Revenue float64 `json:"revenue"`
	Count   int     `json:"count"`
}

type PaymentSlice struct {
	Count int `json:"count"`
	// Percent of total orders, rounded to one decimal.
	Percent float64 `json:"percent"`
}

type Summary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	UniqueCustomers   int     `json:"uniqueCustomers"`
	// MonthlySeries always carries twelve entries, January first; months
	// with no orders report zero, not absence.
	MonthlySeries    [12]MonthBucket         `json:"monthlySeries"`
	StatusBreakdown  map[model.Status]int    `json:"statusBreakdown"`
	PaymentBreakdown map[string]PaymentSlice `json:"paymentBreakdown"`
}

// Summarize computes the dashboard statistics for the orders whose
// placement time falls inside the window. An empty collection yields an
// all-zero summary, never an error.
func Summarize(orders []*model.Order, w Window) Summary {
	s := Summary{
		StatusBreakdown:  make(map[model.Status]int, len(model.AllStatuses)),
		PaymentBreakdown: make(map[string]PaymentSlice),
	}
	for _, st := range model.AllStatuses {
		s.StatusBreakdown[st] = 0
	}

	customers := make(map[string]struct{})
	payments := make(map[string]int)

	for _, o := range orders {
		if !w.contains(o.PlacedAt) {
			continue
		}

		s.TotalOrders++
		s.TotalRevenue += o.Amount

		m := int(o.PlacedAt.Month()) - 1
		s.MonthlySeries[m].Revenue += o.Amount
		s.MonthlySeries[m].Count++

		s.StatusBreakdown[o.Status]++
		payments[o.PaymentStatus]++
		customers[customerKey(o.Customer)] = struct{}{}
	}

	s.UniqueCustomers = len(customers)
	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalRevenue / float64(s.TotalOrders)
	}
	for ps, n := range payments {
		s.PaymentBreakdown[ps] = PaymentSlice{
			Count:   n,
			Percent: math.Round(float64(n)/float64(s.TotalOrders)*1000) / 10,
		}
	}
	return s
}

// customerKey identifies a customer by address and contact composite; no
// authenticated customer id reaches this core.
func customerKey(a model.Address) string {
	return strings.ToLower(strings.Join([]string{
		a.FirstName, a.LastName, a.Street, a.Zipcode, a.Phone,
	}, "|"))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
