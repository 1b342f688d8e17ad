package model

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventType     string    `gorm:"type:varchar(50);not null;index"`
	LogId         *string   `gorm:"type:varchar(100);index"`
	ChatSessionId *string   `gorm:"type:varchar(100)"`
	Details       *string   `gorm:"type:jsonb"`
	OccurredAt    time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"default:now();not null;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
