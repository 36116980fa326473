package service

import (
	"context"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/events"
)

// publishEvent never fails the caller; the event bus is auxiliary.
func publishEvent(ctx context.Context, publisher events.Publisher, log logger.ILogger, eventType string, data map[string]interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		log.Warn("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}
