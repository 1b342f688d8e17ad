package service

import (
	"context"
	"encoding/json"
	"time"

	"hcp-interaction-be/internal/constant"
	"hcp-interaction-be/internal/dto"
	"hcp-interaction-be/internal/entity"
	"hcp-interaction-be/internal/pkg/logger"
	"hcp-interaction-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.InteractionLoggedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "failed to unmarshal audit message", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack malformed messages to prevent infinite retry
		msg.Ack()
		return
	}

	details, _ := json.Marshal(payload)
	detailsStr := string(details)

	audit := entity.AuditLog{
		Id:         uuid.New(),
		EventType:  constant.InteractionLoggedEvent,
		Details:    &detailsStr,
		OccurredAt: payload.OccurredAt,
		CreatedAt:  time.Now(),
	}
	if payload.LogId != "" {
		logId := payload.LogId
		audit.LogId = &logId
	}
	if payload.ChatSessionId != "" {
		sessionId := payload.ChatSessionId
		audit.ChatSessionId = &sessionId
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AuditLogRepository().Create(ctx, &audit); err != nil {
		cs.log.Error("consumer", "failed to persist audit log", map[string]interface{}{
			"log_id": payload.LogId,
			"error":  err.Error(),
		})
		msg.Nack()
		return
	}

	cs.log.Info("consumer", "audit log recorded", map[string]interface{}{
		"log_id":  payload.LogId,
		"updated": payload.Updated,
	})
	msg.Ack()
}
