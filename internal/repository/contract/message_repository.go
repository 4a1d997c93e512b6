package contract

import (
	"context"

	"infograph-be/internal/entity"
	"infograph-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error
}
