// setup.go
package rabbit

import (
	"log/slog"

	"github.com/rabbitmq/amqp091-go"

	"github.com/senura-medagoda/UniMate-sub005/internal/service"
)

func SetupConsumers(ch *amqp091.Channel, svc *service.OrderService) {
	consumer := NewPlaceOrderConsumer(svc)

	q, err := ch.QueueDeclare(
		"marketplace_order_core_placed", // queue private to this service
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		slog.Error("rabbit: queue declare failed", "error", err)
		return
	}

	err = ch.QueueBind(
		q.Name,
		"",             // fanout ignores the routing key
		"order_placed",
		false,
		nil,
	)
	if err != nil {
		slog.Error("rabbit: exchange bind failed", "error", err)
		return
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		slog.Error("rabbit: consume failed", "error", err)
		return
	}

	go func() {
		for m := range msgs {
			consumer.Handle(m.Body)
		}
	}()

	slog.Info("rabbit: subscribed to order_placed exchange")
}
