package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"chessclub/pkg/config"

	"github.com/streadway/amqp"
)

// RetryDelay is the wait before a failed message goes back to the queue.
const RetryDelay = 5 * time.Second

// Handler processes a single game event. An error requeues the message once.
type Handler func(ctx context.Context, event GameRecorded) error

// Consumer reads game events from the queue.
type Consumer struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	queue      string
	retryDelay time.Duration
}

// NewConsumer connects to the broker.
func NewConsumer(cfg config.QueueConfiguration) (*Consumer, error) {
	conn, channel, err := dial(cfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{conn: conn, channel: channel, queue: cfg.QueueName, retryDelay: RetryDelay}, nil
}

// Consume blocks dispatching messages until the context is done or the channel closes.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		c.queue,
		"",
		false, // auto-ack
		false, false, false, nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("MQ Consumer started, waiting for messages on queue: %s", c.queue)

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			handleDelivery(ctx, msg, handler, c.retryDelay)
		}
	}
}

// handleDelivery acks processed messages and drops malformed ones.
// A failure is requeued after the delay, a second failure of a redelivered message drops it.
func handleDelivery(ctx context.Context, msg amqp.Delivery, handler Handler, retryDelay time.Duration) {
	var event GameRecorded
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Failed to unmarshal message: %v", err)
		msg.Nack(false, false)
		return
	}

	if event.Type != GameRecordedType {
		log.Printf("Ignoring message of type %q", event.Type)
		msg.Ack(false)
		return
	}

	if err := handler(ctx, event); err != nil {
		if msg.Redelivered {
			log.Printf("Dropping %s for game %s after a retry: %v", event.Type, event.GameID, err)
			msg.Nack(false, false)
			return
		}

		log.Printf("Failed to handle %s for game %s, retrying in %s: %v", event.Type, event.GameID, retryDelay, err)
		select {
		case <-ctx.Done():
		case <-time.After(retryDelay):
		}
		msg.Nack(false, true)
		return
	}

	msg.Ack(false)
}

// Close the channel and the connection.
func (c *Consumer) Close() error {
	c.channel.Close()
	return c.conn.Close()
}
