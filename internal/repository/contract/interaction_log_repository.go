package contract

import (
	"context"

	"hcp-interaction-be/internal/entity"
	"hcp-interaction-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InteractionLogRepository interface {
	Create(ctx context.Context, log *entity.InteractionLog) error
	// Update rewrites the scalar columns and replaces the child list rows
	// so the stored lists always match the submitted payload exactly.
	Update(ctx context.Context, log *entity.InteractionLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.InteractionLog, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InteractionLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
