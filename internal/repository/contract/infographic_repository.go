package contract

import (
	"context"

	"infograph-be/internal/entity"
	"infograph-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InfographicRepository interface {
	Create(ctx context.Context, infographic *entity.Infographic) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Infographic, error)
	DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
