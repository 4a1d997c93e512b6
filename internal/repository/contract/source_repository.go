package contract

import (
	"context"

	"infograph-be/internal/entity"
	"infograph-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SourceRepository interface {
	Create(ctx context.Context, source *entity.Source) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Source, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
