package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"yatube/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	amqpConn    *amqp.Connection
	amqpChannel *amqp.Channel
)

// PostEvent публикуется при создании поста, консьюмеры раскладывают
// его по лентам подписчиков
type PostEvent struct {
	PostID    int64     `json:"post_id"`
	AuthorID  int64     `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func InitRabbitMQ() error {
	if config.AppConfig == nil {
		return fmt.Errorf("AppConfig is not loaded")
	}
	if config.AppConfig.RabbitMQ.URL == "" {
		return fmt.Errorf("rabbitmq is not configured")
	}

	conn, err := amqp.Dial(config.AppConfig.RabbitMQ.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	err = channel.ExchangeDeclare(exchangeName(), "fanout", true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	amqpConn = conn
	amqpChannel = channel
	return nil
}

func exchangeName() string {
	if config.AppConfig != nil && config.AppConfig.RabbitMQ.Exchange != "" {
		return config.AppConfig.RabbitMQ.Exchange
	}
	return "post_events"
}

// PublishPostEvent отправляет событие в обменник. Без брокера это no-op,
// публикация постов не должна зависеть от его доступности.
func PublishPostEvent(ctx context.Context, event PostEvent) error {
	if amqpChannel == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal post event: %w", err)
	}

	return amqpChannel.PublishWithContext(ctx, exchangeName(), "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        data,
	})
}

func CloseRabbitMQ() {
	if amqpChannel != nil {
		amqpChannel.Close()
		amqpChannel = nil
	}
	if amqpConn != nil {
		amqpConn.Close()
		amqpConn = nil
	}
}
