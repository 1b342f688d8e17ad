package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records a domain event observed on the audit topic.
type AuditLog struct {
	Id            uuid.UUID
	EventType     string
	LogId         *string
	ChatSessionId *string
	Details       *string
	OccurredAt    time.Time
	CreatedAt     time.Time
}
