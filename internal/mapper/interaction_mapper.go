package mapper

import (
	"time"

	"hcp-interaction-be/internal/entity"
	"hcp-interaction-be/internal/model"
)

type InteractionMapper struct{}

func NewInteractionMapper() *InteractionMapper {
	return &InteractionMapper{}
}

func (m *InteractionMapper) ToEntity(row *model.InteractionLog) *entity.InteractionLog {
	if row == nil {
		return nil
	}

	var updatedAt *time.Time
	if !row.UpdatedAt.IsZero() {
		t := row.UpdatedAt
		updatedAt = &t
	}

	materials := make([]entity.ListItem, 0, len(row.MaterialsShared))
	for _, item := range row.MaterialsShared {
		materials = append(materials, entity.ListItem{Id: item.Id, Name: item.Name})
	}
	samples := make([]entity.ListItem, 0, len(row.SamplesDistributed))
	for _, item := range row.SamplesDistributed {
		samples = append(samples, entity.ListItem{Id: item.Id, Name: item.Name})
	}
	products := make([]string, 0, len(row.ProductsDiscussed))
	for _, item := range row.ProductsDiscussed {
		products = append(products, item.Name)
	}

	return &entity.InteractionLog{
		Id:                 row.Id,
		HcpName:            row.HcpName,
		InteractionType:    row.InteractionType,
		InteractionDate:    row.InteractionDate,
		InteractionTime:    row.InteractionTime,
		Attendees:          row.Attendees,
		TopicsDiscussed:    row.TopicsDiscussed,
		Sentiment:          row.Sentiment,
		Outcomes:           row.Outcomes,
		FollowUpActions:    row.FollowUpActions,
		MaterialsShared:    materials,
		SamplesDistributed: samples,
		ProductsDiscussed:  products,
		ChatSessionId:      row.ChatSessionId,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          updatedAt,
	}
}

func (m *InteractionMapper) ToModel(log *entity.InteractionLog) *model.InteractionLog {
	if log == nil {
		return nil
	}

	var updatedAt time.Time
	if log.UpdatedAt != nil {
		updatedAt = *log.UpdatedAt
	}

	return &model.InteractionLog{
		Id:                 log.Id,
		HcpName:            log.HcpName,
		InteractionType:    log.InteractionType,
		InteractionDate:    log.InteractionDate,
		InteractionTime:    log.InteractionTime,
		Attendees:          log.Attendees,
		TopicsDiscussed:    log.TopicsDiscussed,
		Sentiment:          log.Sentiment,
		Outcomes:           log.Outcomes,
		FollowUpActions:    log.FollowUpActions,
		ChatSessionId:      log.ChatSessionId,
		CreatedAt:          log.CreatedAt,
		UpdatedAt:          updatedAt,
		MaterialsShared:    m.materialsToModel(log),
		SamplesDistributed: m.samplesToModel(log),
		ProductsDiscussed:  m.productsToModel(log),
	}
}

func (m *InteractionMapper) materialsToModel(log *entity.InteractionLog) []model.InteractionMaterialShared {
	rows := make([]model.InteractionMaterialShared, 0, len(log.MaterialsShared))
	for i, item := range log.MaterialsShared {
		rows = append(rows, model.InteractionMaterialShared{
			Id:               item.Id,
			InteractionLogId: log.Id,
			Name:             item.Name,
			Position:         i,
		})
	}
	return rows
}

func (m *InteractionMapper) samplesToModel(log *entity.InteractionLog) []model.InteractionSampleDistributed {
	rows := make([]model.InteractionSampleDistributed, 0, len(log.SamplesDistributed))
	for i, item := range log.SamplesDistributed {
		rows = append(rows, model.InteractionSampleDistributed{
			Id:               item.Id,
			InteractionLogId: log.Id,
			Name:             item.Name,
			Position:         i,
		})
	}
	return rows
}

func (m *InteractionMapper) productsToModel(log *entity.InteractionLog) []model.InteractionProductDiscussed {
	rows := make([]model.InteractionProductDiscussed, 0, len(log.ProductsDiscussed))
	for i, name := range log.ProductsDiscussed {
		rows = append(rows, model.InteractionProductDiscussed{
			InteractionLogId: log.Id,
			Name:             name,
			Position:         i,
		})
	}
	return rows
}

func (m *InteractionMapper) AuditToModel(log *entity.AuditLog) *model.AuditLog {
	if log == nil {
		return nil
	}
	return &model.AuditLog{
		Id:            log.Id,
		EventType:     log.EventType,
		LogId:         log.LogId,
		ChatSessionId: log.ChatSessionId,
		Details:       log.Details,
		OccurredAt:    log.OccurredAt,
		CreatedAt:     log.CreatedAt,
	}
}

func (m *InteractionMapper) AuditToEntity(row *model.AuditLog) *entity.AuditLog {
	if row == nil {
		return nil
	}
	return &entity.AuditLog{
		Id:            row.Id,
		EventType:     row.EventType,
		LogId:         row.LogId,
		ChatSessionId: row.ChatSessionId,
		Details:       row.Details,
		OccurredAt:    row.OccurredAt,
		CreatedAt:     row.CreatedAt,
	}
}
