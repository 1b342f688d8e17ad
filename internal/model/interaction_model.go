package model

import (
	"time"

	"github.com/google/uuid"
)

type InteractionLog struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	HcpName         *string   `gorm:"type:varchar(255);index"`
	InteractionType *string   `gorm:"type:varchar(50)"`
	InteractionDate *string   `gorm:"type:varchar(10)"`
	InteractionTime *string   `gorm:"type:varchar(8)"`
	Attendees       *string   `gorm:"type:text"`
	TopicsDiscussed *string   `gorm:"type:text"`
	Sentiment       *string   `gorm:"type:varchar(20)"`
	Outcomes        *string   `gorm:"type:text"`
	FollowUpActions *string   `gorm:"type:text"`
	ChatSessionId   *string   `gorm:"type:varchar(100);index"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`

	MaterialsShared    []InteractionMaterialShared    `gorm:"foreignKey:InteractionLogId;constraint:OnDelete:CASCADE"`
	SamplesDistributed []InteractionSampleDistributed `gorm:"foreignKey:InteractionLogId;constraint:OnDelete:CASCADE"`
	ProductsDiscussed  []InteractionProductDiscussed  `gorm:"foreignKey:InteractionLogId;constraint:OnDelete:CASCADE"`
}

func (InteractionLog) TableName() string {
	return "interaction_logs"
}

type InteractionMaterialShared struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InteractionLogId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Position         int       `gorm:"not null"`
}

func (InteractionMaterialShared) TableName() string {
	return "interaction_materials_shared"
}

type InteractionSampleDistributed struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InteractionLogId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Position         int       `gorm:"not null"`
}

func (InteractionSampleDistributed) TableName() string {
	return "interaction_samples_distributed"
}

type InteractionProductDiscussed struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InteractionLogId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Position         int       `gorm:"not null"`
}

func (InteractionProductDiscussed) TableName() string {
	return "interaction_products_discussed"
}
