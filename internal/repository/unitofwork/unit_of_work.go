package unitofwork

import (
	"context"

	"hcp-interaction-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	InteractionLogRepository() contract.InteractionLogRepository
	AuditLogRepository() contract.AuditLogRepository
}
