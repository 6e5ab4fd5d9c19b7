// Package service publishes domain events to RabbitMQ.  Errors are logged
// and returned so callers can ignore broker failures without interrupting
// the request that produced the event.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/atelier/discography-api/internal/logger"
	"github.com/atelier/discography-api/internal/model"
	"github.com/atelier/discography-api/internal/queue"
)

// EventPublisher abstracts event emission so handlers can be exercised in
// tests without a broker.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *model.Order)
}

// QueuePublisher publishes events over a fresh AMQP connection per call.
// Order volume is low enough that connection reuse is not worth the
// reconnect bookkeeping.
type QueuePublisher struct{}

// OrderCreated publishes an OrderCreatedEvent to the order.created queue.
// Broker failures are logged and swallowed; the order is already committed
// by the time this runs.
func (QueuePublisher) OrderCreated(ctx context.Context, order *model.Order) {
	ev := queue.OrderCreatedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		UserEmail:   order.UserEmail,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, it := range order.Items {
		ev.Items = append(ev.Items, queue.OrderEventItem{
			AlbumID:    it.AlbumID,
			AlbumName:  it.AlbumName,
			ArtistName: it.ArtistName,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
		})
	}
	if err := publish(ctx, "order.created", ev); err != nil {
		logger.Log.Warnw("order event publish failed", "order_id", order.ID, "err", err)
	}
}

func publish(ctx context.Context, queueName string, event any) error {
	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	return ch.PublishWithContext(ctx, "", queueName, false, false, pub)
}
