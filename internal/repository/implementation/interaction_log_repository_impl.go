package implementation

import (
	"context"
	"errors"

	"hcp-interaction-be/internal/entity"
	"hcp-interaction-be/internal/mapper"
	"hcp-interaction-be/internal/model"
	"hcp-interaction-be/internal/repository/contract"
	"hcp-interaction-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InteractionLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InteractionMapper
}

func NewInteractionLogRepository(db *gorm.DB) contract.InteractionLogRepository {
	return &InteractionLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewInteractionMapper(),
	}
}

func (r *InteractionLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InteractionLogRepositoryImpl) Create(ctx context.Context, log *entity.InteractionLog) error {
	m := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(m)
	return nil
}

func (r *InteractionLogRepositoryImpl) Update(ctx context.Context, log *entity.InteractionLog) error {
	m := r.mapper.ToModel(log)

	// Children are replaced wholesale, not diffed. Delete then reinsert in
	// the caller's transaction.
	if err := r.deleteChildren(ctx, m.Id); err != nil {
		return err
	}

	scalars := map[string]interface{}{
		"hcp_name":          m.HcpName,
		"interaction_type":  m.InteractionType,
		"interaction_date":  m.InteractionDate,
		"interaction_time":  m.InteractionTime,
		"attendees":         m.Attendees,
		"topics_discussed":  m.TopicsDiscussed,
		"sentiment":         m.Sentiment,
		"outcomes":          m.Outcomes,
		"follow_up_actions": m.FollowUpActions,
		"chat_session_id":   m.ChatSessionId,
	}
	if err := r.db.WithContext(ctx).Model(&model.InteractionLog{}).
		Where("id = ?", m.Id).Updates(scalars).Error; err != nil {
		return err
	}

	if len(m.MaterialsShared) > 0 {
		if err := r.db.WithContext(ctx).Create(&m.MaterialsShared).Error; err != nil {
			return err
		}
	}
	if len(m.SamplesDistributed) > 0 {
		if err := r.db.WithContext(ctx).Create(&m.SamplesDistributed).Error; err != nil {
			return err
		}
	}
	if len(m.ProductsDiscussed) > 0 {
		if err := r.db.WithContext(ctx).Create(&m.ProductsDiscussed).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *InteractionLogRepositoryImpl) deleteChildren(ctx context.Context, logId uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("interaction_log_id = ?", logId).
		Delete(&model.InteractionMaterialShared{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("interaction_log_id = ?", logId).
		Delete(&model.InteractionSampleDistributed{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("interaction_log_id = ?", logId).
		Delete(&model.InteractionProductDiscussed{}).Error
}

func (r *InteractionLogRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.deleteChildren(ctx, id); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&model.InteractionLog{}, id).Error
}

func (r *InteractionLogRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InteractionLog, error) {
	var m model.InteractionLog
	query := r.applySpecifications(r.db.WithContext(ctx).
		Preload("MaterialsShared", orderByPosition).
		Preload("SamplesDistributed", orderByPosition).
		Preload("ProductsDiscussed", orderByPosition), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InteractionLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InteractionLog, error) {
	var models []*model.InteractionLog
	query := r.applySpecifications(r.db.WithContext(ctx).
		Preload("MaterialsShared", orderByPosition).
		Preload("SamplesDistributed", orderByPosition).
		Preload("ProductsDiscussed", orderByPosition), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.InteractionLog, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *InteractionLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.InteractionLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}
