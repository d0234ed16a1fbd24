package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"chessclub/pkg/config"

	"github.com/streadway/amqp"
)

// publishChannel is the part of the amqp channel the publisher needs.
type publishChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends game events to the queue.
type Publisher struct {
	conn    *amqp.Connection
	channel publishChannel
	queue   string
}

// dial opens the connection and declares the durable queue.
func dial(cfg config.QueueConfiguration) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("MQ connect failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("MQ channel failed: %w", err)
	}

	_, err = channel.QueueDeclare(
		cfg.QueueName,
		true, false, false, false, nil,
	)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("MQ queue declare failed: %w", err)
	}

	return conn, channel, nil
}

// NewPublisher connects to the broker.
func NewPublisher(cfg config.QueueConfiguration) (*Publisher, error) {
	conn, channel, err := dial(cfg)
	if err != nil {
		return nil, err
	}

	return &Publisher{conn: conn, channel: channel, queue: cfg.QueueName}, nil
}

// PublishGameRecorded sends the event as a persistent json message.
func (p *Publisher) PublishGameRecorded(ctx context.Context, event GameRecorded) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.channel.Publish(
		"",
		p.queue,
		false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	return nil
}

// Close the channel and the connection.
func (p *Publisher) Close() error {
	p.channel.Close()
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
