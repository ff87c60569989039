package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const FramesRoutingKey = "frames.extracted"

type Publisher struct {
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(conn *amqp.Connection, exchange string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open publisher channel: %w", err)
	}

	err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &Publisher{channel: ch, exchange: exchange}, nil
}

// FramesPublisher announces completed extractions so downstream
// dataset jobs can pick up the new frames.
type FramesPublisher struct {
	pub *Publisher
}

func NewFramesPublisher(pub *Publisher) *FramesPublisher {
	return &FramesPublisher{pub: pub}
}

func (fp *FramesPublisher) PublishExtractionCompleted(ctx context.Context, msg []byte) error {
	return fp.pub.channel.PublishWithContext(ctx,
		fp.pub.exchange,
		FramesRoutingKey,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         msg,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
		},
	)
}
