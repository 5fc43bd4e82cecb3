// Package application holds helpers shared by the application services.
package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/kostman/backend/internal/domain/shared"
	"github.com/kostman/backend/internal/infrastructure/logger"
)

// LogDomainEvents drains the pending events of a saved aggregate into the
// request-scoped log. Call it only after the save succeeded so no event is
// reported for a change that was rolled back.
func LogDomainEvents(ctx context.Context, agg shared.AggregateRoot) {
	for _, event := range agg.PullDomainEvents() {
		logger.L(ctx).Info("Domain event",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_type", event.AggregateType()),
			zap.String("aggregate_id", event.AggregateID().String()),
		)
	}
}
