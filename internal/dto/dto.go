// dto.go
package dto

import (
	"time"

	"github.com/senura-medagoda/UniMate-sub005/internal/model"
)

// PlaceOrderRequest creates an order, either via the API or from the
// order_placed queue. OrderID is optional; one is assigned when absent.
type PlaceOrderRequest struct {
	OrderID       string         `json:"orderId"`
	Items         []OrderItemDTO `json:"items" binding:"required"`
	Customer      AddressDTO     `json:"customer" binding:"required"`
	PaymentStatus string         `json:"paymentStatus"`
}

type OrderItemDTO struct {
	ProductName string  `json:"productName" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unitPrice"`
	Size        string  `json:"size"`
	Category    string  `json:"category" binding:"required"`
}

type AddressDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zipcode   string `json:"zipcode"`
	Phone     string `json:"phone"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RecordLocationRequest struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	ObservedAt time.Time `json:"observedAt" binding:"required"`
}

// StalenessResponse distinguishes "never updated" from an exact age.
type StalenessResponse struct {
	Tracked      bool                 `json:"tracked"`
	AgeSeconds   *float64             `json:"ageSeconds,omitempty"`
	LastLocation *model.TrackingPoint `json:"lastLocation,omitempty"`
}

func (i OrderItemDTO) ToModel() model.OrderItem {
	return model.OrderItem{
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		Size:        i.Size,
		Category:    i.Category,
	}
}

func (a AddressDTO) ToModel() model.Address {
	return model.Address{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Street:    a.Street,
		City:      a.City,
		State:     a.State,
		Zipcode:   a.Zipcode,
		Phone:     a.Phone,
	}
}

func ItemsToModel(in []OrderItemDTO) []model.OrderItem {
	out := make([]model.OrderItem, 0, len(in))
	for _, it := range in {
		out = append(out, it.ToModel())
	}
	return out
}
