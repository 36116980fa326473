package service

import (
	"context"
	"encoding/json"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type EventSubscriber interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
}

type IAuditService interface {
	Consume(ctx context.Context) error
}

// auditService copies every domain event into the audit log.
type auditService struct {
	subscriber EventSubscriber
	auditLog   logger.ILogger
	logger     logger.ILogger
}

func NewAuditService(subscriber EventSubscriber, auditLog logger.ILogger, log logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		auditLog:   auditLog,
		logger:     log,
	}
}

func (s *auditService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(msg)
		}
	}()

	return nil
}

func (s *auditService) processMessage(msg *message.Message) {
	// Malformed messages are acked too, redelivery would not fix them
	defer msg.Ack()

	var env events.Envelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		s.logger.Error("AUDIT", "Failed to decode event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		return
	}

	s.auditLog.Info("AUDIT", env.Type, map[string]interface{}{
		"event_id":    env.Id,
		"occurred_at": env.OccurredAt,
		"data":        env.Data,
	})
}
