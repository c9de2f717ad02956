// models.go
package model

import "time"

// Status is the fulfillment stage of an order. Progression is strictly
// linear: Placed -> Packing -> Shipped -> OutForDelivery -> Delivered.
type Status string

const (
	StatusPlaced         Status = "Placed"
	StatusPacking        Status = "Packing"
	StatusShipped        Status = "Shipped"
	StatusOutForDelivery Status = "OutForDelivery"
	StatusDelivered      Status = "Delivered"
)

// AllStatuses lists the five recognized statuses in lifecycle order.
var AllStatuses = []Status{
	StatusPlaced,
	StatusPacking,
	StatusShipped,
	StatusOutForDelivery,
	StatusDelivered,
}

var nextStatus = map[Status]Status{
	StatusPlaced:         StatusPacking,
	StatusPacking:        StatusShipped,
	StatusShipped:        StatusOutForDelivery,
	StatusOutForDelivery: StatusDelivered,
}

// Valid reports whether s is one of the five recognized statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPlaced, StatusPacking, StatusShipped, StatusOutForDelivery, StatusDelivered:
		return true
	}
	return false
}

// Next returns the only status reachable from s. ok is false when s is
// terminal (Delivered) or unrecognized.
func (s Status) Next() (Status, bool) {
	n, ok := nextStatus[s]
	return n, ok
}

// Terminal reports whether s admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered
}

type Order struct {
	ID    string      `bson:"order_id" json:"orderId"`
	Items []OrderItem `bson:"items" json:"items"`
	// Amount is computed once at placement and never recomputed from items,
	// so later catalog edits cannot rewrite historical invoices.
	Amount        float64   `bson:"amount" json:"amount"`
	Status        Status    `bson:"status" json:"status"`
	PaymentStatus string    `bson:"payment_status" json:"paymentStatus"`
	Customer      Address   `bson:"customer" json:"customer"`
	PlacedAt      time.Time `bson:"placed_at" json:"placedAt"`

	// LastLocation is the courier's latest known position, absent until the
	// first tracking write. Tracking keeps every accepted snapshot.
	LastLocation *TrackingPoint  `bson:"last_location,omitempty" json:"lastLocation,omitempty"`
	Tracking     []TrackingPoint `bson:"tracking,omitempty" json:"tracking,omitempty"`

	History   []StatusRecord `bson:"history" json:"history"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updatedAt"`
}

type OrderItem struct {
	ProductName string  `bson:"product_name" json:"productName"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unitPrice"`
	Size        string  `bson:"size,omitempty" json:"size,omitempty"`
	Category    string  `bson:"category" json:"category"`
}

// Subtotal is the line total for the item.
func (i OrderItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

type Address struct {
	FirstName string `bson:"first_name" json:"firstName"`
	LastName  string `bson:"last_name" json:"lastName"`
	Street    string `bson:"street" json:"street"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	Zipcode   string `bson:"zipcode" json:"zipcode"`
	Phone     string `bson:"phone" json:"phone"`
}

// FullName joins first and last name for display and search.
func (a Address) FullName() string {
	return a.FirstName + " " + a.LastName
}

// TrackingPoint is a single courier position observation.
type TrackingPoint struct {
	Lat       float64   `bson:"lat" json:"lat"`
	Lng       float64   `bson:"lng" json:"lng"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type StatusRecord struct {
	Status     Status    `bson:"status" json:"status"`
	OperatorID string    `bson:"operator" json:"operatorId"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}
