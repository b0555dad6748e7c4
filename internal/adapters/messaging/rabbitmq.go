package messaging

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"

	"github.com/mergington/high-school/activities-service/internal/config"
)

// channel is the part of *amqp.Channel the broker publishes through.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitMQBroker implements ports.EventPublisher using RabbitMQ.
type RabbitMQBroker struct {
	conn      *amqp.Connection
	ch        channel
	queueName string
	cb        *gobreaker.CircuitBreaker
}

func NewRabbitMQBroker(amqpURL, queueName string) (*RabbitMQBroker, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Declare the queue (idempotent)
	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	b := newBroker(ch, queueName)
	b.conn = conn
	return b, nil
}

func newBroker(ch channel, queueName string) *RabbitMQBroker {
	return &RabbitMQBroker{
		ch:        ch,
		queueName: queueName,
		cb:        config.NewCircuitBreaker(config.BreakerRabbitMQ),
	}
}

func (rmq *RabbitMQBroker) Close() error {
	if rmq.ch != nil {
		if err := rmq.ch.Close(); err != nil {
			return err
		}
	}
	if rmq.conn != nil {
		return rmq.conn.Close()
	}
	return nil
}

// IsClosed reports whether the underlying connection is gone.
func (rmq *RabbitMQBroker) IsClosed() bool {
	return rmq.conn != nil && rmq.conn.IsClosed()
}
