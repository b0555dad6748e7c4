package ports

import (
	"context"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
)

type EventPublisher interface {
	Publish(ctx context.Context, evt domain.Event) error
}
