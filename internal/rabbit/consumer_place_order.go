package rabbit

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/senura-medagoda/UniMate-sub005/internal/dto"
	"github.com/senura-medagoda/UniMate-sub005/internal/service"
)

// PlaceOrderConsumer seeds an order document for every checkout the
// marketplace publishes on the order_placed exchange.
type PlaceOrderConsumer struct {
	Service *service.OrderService
}

func NewPlaceOrderConsumer(s *service.OrderService) *PlaceOrderConsumer {
	return &PlaceOrderConsumer{Service: s}
}

type PlacedOrderMessage struct {
	CorrelationID string `json:"correlation_id"`
	Exchange      string `json:"exchange"`
	RoutingKey    string `json:"routing_key"`
	Message       struct {
		OrderID       string             `json:"orderId"`
		PaymentStatus string             `json:"paymentStatus"`
		Customer      dto.AddressDTO     `json:"customer"`
		Items         []dto.OrderItemDTO `json:"items"`
	} `json:"message"`
}

func (c *PlaceOrderConsumer) Handle(msg []byte) error {
	var event PlacedOrderMessage
	if err := json.Unmarshal(msg, &event); err != nil {
		slog.Error("order_placed: malformed message", "error", err)
		return err
	}

	ord, err := c.Service.Create(context.Background(), service.PlaceOrderInput{
		OrderID:       event.Message.OrderID,
		Items:         dto.ItemsToModel(event.Message.Items),
		Customer:      event.Message.Customer.ToModel(),
		PaymentStatus: event.Message.PaymentStatus,
	})
	if err != nil {
		slog.Error("order_placed: create failed", "orderId", event.Message.OrderID, "error", err)
		return err
	}

	slog.Info("order_placed: order created", "orderId", ord.ID, "amount", ord.Amount)
	return nil
}
