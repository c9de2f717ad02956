package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/senura-medagoda/UniMate-sub005/internal/model"
	"github.com/senura-medagoda/UniMate-sub005/internal/repository"
)

// Interface the repository must implement
type OrderRepository interface {
	Insert(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, from, to model.Status, rec model.StatusRecord) error
	UpdateLocation(ctx context.Context, orderID string, p model.TrackingPoint) error
	FindAll(ctx context.Context) ([]*model.Order, error)
	ListPage(ctx context.Context, cursor string, limit int) (repository.Page, error)
	Delete(ctx context.Context, orderID string) error
}

// Business errors exported for the controller
var (
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidValue      = errors.New("invalid value")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Principal is the authenticated operator a mutating call acts as. It is
// passed explicitly rather than read from ambient state; credential
// validation happened upstream in the auth collaborator.
type Principal struct {
	ID    string
	Name  string
	Admin bool
}

func (p Principal) Authenticated() bool {
	return p.ID != ""
}

type OrderService struct {
	repo OrderRepository
}

func NewOrderService(r OrderRepository) *OrderService {
	return &OrderService{repo: r}
}

// PlaceOrderInput is what the placing surface (API or order_placed queue)
// supplies. Prices and categories are copied from the catalog at this
// moment and never looked up again.
type PlaceOrderInput struct {
	OrderID       string
	Items         []model.OrderItem
	Customer      model.Address
	PaymentStatus string
	PlacedAt      time.Time
}

// Create places a new order: validates the items, computes the amount once,
// and writes the document with status Placed. The amount is never derived
// from items again after this point.
func (s *OrderService) Create(ctx context.Context, in PlaceOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: order has no items", ErrInvalidValue)
	}

	var amount float64
	for i, it := range in.Items {
		if it.ProductName == "" {
			return nil, fmt.Errorf("%w: item %d has no product name", ErrInvalidValue, i)
		}
		if it.Category == "" {
			return nil, fmt.Errorf("%w: item %d has no category", ErrInvalidValue, i)
		}
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d quantity %d is below 1", ErrInvalidValue, i, it.Quantity)
		}
		if it.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: item %d unit price %v is negative", ErrInvalidValue, i, it.UnitPrice)
		}
		amount += it.Subtotal()
	}

	id := in.OrderID
	if id == "" {
		id = uuid.NewString()
	}

	placedAt := in.PlacedAt
	if placedAt.IsZero() {
		placedAt = time.Now().UTC()
	}

	o := &model.Order{
		ID:            id,
		Items:         in.Items,
		Amount:        amount,
		Status:        model.StatusPlaced,
		PaymentStatus: in.PaymentStatus,
		Customer:      in.Customer,
		PlacedAt:      placedAt,
		History: []model.StatusRecord{
			{
				Status:    model.StatusPlaced,
				Timestamp: placedAt,
			},
		},
	}

	if err := s.repo.Insert(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Getters
func (s *OrderService) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	return s.repo.FindByID(ctx, orderID)
}

func (s *OrderService) GetAll(ctx context.Context) ([]*model.Order, error) {
	return s.repo.FindAll(ctx)
}

func (s *OrderService) GetPage(ctx context.Context, cursor string, limit int) (repository.Page, error) {
	return s.repo.ListPage(ctx, cursor, limit)
}

// Transition moves the order one step forward along the lifecycle.
// Backward moves and skips are rejected; the legacy admin UI allowed
// arbitrary reassignment, which is treated here as a gap, not a feature.
// Repeating the current status is a no-op.
func (s *OrderService) Transition(ctx context.Context, p Principal, orderID string, target model.Status) error {
	if !p.Authenticated() {
		return ErrForbidden
	}
	if !target.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidValue, target)
	}

	ord, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if ord.Status == target {
		return nil
	}
	next, ok := ord.Status.Next()
	if !ok {
		return fmt.Errorf("%w: %s is terminal", ErrInvalidTransition, ord.Status)
	}
	if target != next {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ord.Status, target)
	}

	rec := model.StatusRecord{
		Status:     target,
		OperatorID: p.ID,
		Timestamp:  time.Now().UTC(),
	}

	return s.repo.UpdateStatus(ctx, orderID, ord.Status, target, rec)
}

// Delete removes a delivered order. Irreversible, operator-only; the
// delivered-only rule is enforced at the storage write.
func (s *OrderService) Delete(ctx context.Context, p Principal, orderID string) error {
	if !p.Authenticated() {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, orderID)
}
