package ports

import (
	"context"

	"github.com/mapadf/pontos/internal/core/domain"
)

// EventPublisher publishes point lifecycle events to a message broker.
// Publishing failures are logged by the caller and never fail the
// originating operation.
type EventPublisher interface {
	PublishPointCreated(ctx context.Context, p *domain.Point) error
	PublishPointUpdated(ctx context.Context, p *domain.Point) error
	PublishPointDeleted(ctx context.Context, id int64) error
}
