package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

func newEvent(typ domain.EventType, activity, email string, actor *domain.User) domain.Event {
	return domain.Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Activity:   activity,
		Email:      email,
		Actor:      actor.Email,
		OccurredAt: time.Now().UTC(),
	}
}

// publish hands evt to the publisher. The mutation it describes has
// already happened, so a failure is logged and dropped.
func publish(ctx context.Context, p ports.EventPublisher, logger *slog.Logger, evt domain.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, evt); err != nil {
		logger.Warn("publish event", "type", evt.Type, "event_id", evt.ID, "error", err)
	}
}
