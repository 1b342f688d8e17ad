package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"hcp-interaction-be/internal/dto"
	"hcp-interaction-be/internal/entity"
	"hcp-interaction-be/internal/pkg/logger"
	"hcp-interaction-be/internal/repository/specification"
	"hcp-interaction-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var timeFieldRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)

type ILogService interface {
	LogStructured(ctx context.Context, req *dto.LogStructuredRequest) (*dto.LogStructuredResponse, error)
}

type logService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewLogService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) ILogService {
	return &logService{
		uowFactory: uowFactory,
		log:        log,
	}
}

// LogStructured creates a new interaction log or, when an id is supplied,
// replaces the identified log with the submitted payload. Child lists are
// replaced wholesale so the stored lists always match the submission.
func (s *logService) LogStructured(ctx context.Context, req *dto.LogStructuredRequest) (*dto.LogStructuredResponse, error) {
	if err := validateTimeField(req.Time); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	log := s.toEntity(req)

	if req.Id != nil {
		logId, err := uuid.Parse(*req.Id)
		if err != nil {
			return nil, &dto.DetailError{
				Status: 404,
				Detail: fmt.Sprintf("Log ID %s not found for update.", *req.Id),
			}
		}

		existing, err := uow.InteractionLogRepository().FindOne(ctx, specification.ByID{ID: logId})
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, &dto.DetailError{
				Status: 404,
				Detail: fmt.Sprintf("Log ID %s not found for update.", *req.Id),
			}
		}

		log.Id = logId
		log.CreatedAt = existing.CreatedAt

		if err := uow.Begin(ctx); err != nil {
			return nil, err
		}
		defer uow.Rollback()

		if err := uow.InteractionLogRepository().Update(ctx, log); err != nil {
			return nil, err
		}
		if err := uow.Commit(); err != nil {
			return nil, err
		}

		s.log.Info("log", "interaction log updated", map[string]interface{}{
			"log_id": logId.String(),
		})
		return &dto.LogStructuredResponse{
			Id:      logId.String(),
			Message: fmt.Sprintf("Interaction log (ID: %s) updated successfully.", logId),
		}, nil
	}

	log.Id = uuid.New()
	log.CreatedAt = time.Now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.InteractionLogRepository().Create(ctx, log); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.log.Info("log", "interaction log saved", map[string]interface{}{
		"log_id": log.Id.String(),
	})
	return &dto.LogStructuredResponse{
		Id:      log.Id.String(),
		Message: fmt.Sprintf("Interaction log (ID: %s) saved successfully.", log.Id),
	}, nil
}

func (s *logService) toEntity(req *dto.LogStructuredRequest) *entity.InteractionLog {
	materials := make([]entity.ListItem, 0, len(req.MaterialsShared))
	for _, item := range req.MaterialsShared {
		materials = append(materials, entity.ListItem{Id: uuid.New(), Name: item.Name})
	}
	samples := make([]entity.ListItem, 0, len(req.SamplesDistributed))
	for _, item := range req.SamplesDistributed {
		samples = append(samples, entity.ListItem{Id: uuid.New(), Name: item.Name})
	}
	products := make([]string, 0, len(req.ProductsDiscussed))
	products = append(products, req.ProductsDiscussed...)

	var chatSessionId *string
	if req.ChatSessionId != "" {
		sessionId := req.ChatSessionId
		chatSessionId = &sessionId
	}

	return &entity.InteractionLog{
		HcpName:            req.HcpName,
		InteractionType:    req.InteractionType,
		InteractionDate:    req.Date,
		InteractionTime:    req.Time,
		Attendees:          req.Attendees,
		TopicsDiscussed:    req.TopicsDiscussed,
		Sentiment:          req.Sentiment,
		Outcomes:           req.Outcomes,
		FollowUpActions:    req.FollowUpActions,
		MaterialsShared:    materials,
		SamplesDistributed: samples,
		ProductsDiscussed:  products,
		ChatSessionId:      chatSessionId,
	}
}

func validateTimeField(value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	if !timeFieldRe.MatchString(*value) {
		return &dto.DetailError{
			Status: 422,
			Detail: []dto.FieldDetail{{
				Loc: []string{"body", "time"},
				Msg: "invalid time format, expected HH:MM or HH:MM:SS",
			}},
		}
	}
	layout := "15:04"
	if len(*value) == 8 {
		layout = "15:04:05"
	}
	if _, err := time.Parse(layout, *value); err != nil {
		return &dto.DetailError{
			Status: 422,
			Detail: []dto.FieldDetail{{
				Loc: []string{"body", "time"},
				Msg: "invalid time format, expected HH:MM or HH:MM:SS",
			}},
		}
	}
	return nil
}
