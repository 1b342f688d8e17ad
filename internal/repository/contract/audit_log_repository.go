package contract

import (
	"context"

	"hcp-interaction-be/internal/entity"
	"hcp-interaction-be/internal/repository/specification"
)

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
