package service

import (
	"context"
	"fmt"
	"time"

	"github.com/senura-medagoda/UniMate-sub005/internal/model"
)

const (
	latMin, latMax = -90.0, 90.0
	lngMin, lngMax = -180.0, 180.0
)

// TrackerService records courier position snapshots against orders and
// answers how stale the last known position is. Where the coordinate
// comes from (device GPS, manual entry) is the caller's concern.
type TrackerService struct {
	repo OrderRepository
	now  func() time.Time
}

func NewTrackerService(r OrderRepository) *TrackerService {
	return &TrackerService{repo: r, now: time.Now}
}

// RecordLocation stores (lat, lng, observedAt) as the order's latest
// position. An observation older than the stored one is rejected with
// repository.ErrStaleUpdate and changes nothing; callers usually log and
// ignore that, since it means network reordering rather than a mistake.
func (s *TrackerService) RecordLocation(ctx context.Context, p Principal, orderID string, lat, lng float64, observedAt time.Time) error {
	if !p.Authenticated() {
		return ErrForbidden
	}
	if lat < latMin || lat > latMax {
		return fmt.Errorf("%w: lat %v is outside [%v, %v]", ErrInvalidValue, lat, latMin, latMax)
	}
	if lng < lngMin || lng > lngMax {
		return fmt.Errorf("%w: lng %v is outside [%v, %v]", ErrInvalidValue, lng, lngMin, lngMax)
	}
	if observedAt.IsZero() {
		return fmt.Errorf("%w: observedAt is not set", ErrInvalidValue)
	}

	point := model.TrackingPoint{
		Lat:       lat,
		Lng:       lng,
		UpdatedAt: observedAt.UTC(),
	}
	return s.repo.UpdateLocation(ctx, orderID, point)
}

// Staleness returns how long ago the last snapshot was recorded. known is
// false when the order has never been tracked; the presentation layer
// phrases that as "never updated".
func (s *TrackerService) Staleness(ctx context.Context, orderID string) (age time.Duration, known bool, err error) {
	ord, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return 0, false, err
	}
	if ord.LastLocation == nil {
		return 0, false, nil
	}
	return s.now().UTC().Sub(ord.LastLocation.UpdatedAt), true, nil
}

// LastLocation returns the latest snapshot, or nil when never tracked.
func (s *TrackerService) LastLocation(ctx context.Context, orderID string) (*model.TrackingPoint, error) {
	ord, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ord.LastLocation, nil
}
