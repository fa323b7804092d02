package notification

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const notificationQueue = "notifications"

// AMQPPublisher pushes notification events onto a RabbitMQ queue for
// downstream delivery (mail, push, analytics). Messages are persistent and
// the queue is declared durable on every publish, which keeps the publisher
// stateless across broker restarts.
type AMQPPublisher struct {
	url string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{url: url}
}

// Publish sends one notification event to the queue. Errors are returned so
// the caller can decide to log and move on; this function never panics.
func (p *AMQPPublisher) Publish(ctx context.Context, n *Notification) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp dial failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel open failed: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		notificationQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return fmt.Errorf("amqp queue declare failed: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(n.Kind),
		Timestamp:    time.Now().UTC(),
		Body:         n.Payload,
	}

	if err := ch.PublishWithContext(ctx, "", notificationQueue, false, false, pub); err != nil {
		return fmt.Errorf("amqp publish failed: %w", err)
	}

	return nil
}
