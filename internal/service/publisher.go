// Package service holds the business rules that sit between HTTP handlers
// and repositories: body validation, the ordered precondition checks that
// pick which NotFound message a caller sees, and activity events for every
// committed mutation.
package service

//go:generate mockgen -package=mocks -destination=mocks/mock_publisher.go github.com/iliyamo/music-request-api/internal/service EventPublisher

import (
	"context"
	"log/slog"

	"github.com/iliyamo/music-request-api/internal/queue"
)

// EventPublisher delivers activity events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.ActivityEvent) error
}

// publish sends ev when a publisher is configured.  Failures are logged and
// never reach the caller: the mutation has already been committed.
func publish(ctx context.Context, p EventPublisher, ev queue.ActivityEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		slog.WarnContext(ctx, "activity event not published", "type", ev.Type, "err", err)
	}
}
