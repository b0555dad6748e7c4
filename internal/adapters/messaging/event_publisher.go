package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

var _ ports.EventPublisher = (*RabbitMQBroker)(nil)

func (rmq *RabbitMQBroker) Publish(ctx context.Context, evt domain.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    evt.ID,
				Type:         string(evt.Type),
				Timestamp:    evt.OccurredAt,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}

// NopPublisher drops every event. It stands in when no broker is configured.
type NopPublisher struct{}

var _ ports.EventPublisher = NopPublisher{}

func (NopPublisher) Publish(context.Context, domain.Event) error { return nil }
