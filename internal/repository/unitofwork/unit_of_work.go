package unitofwork

import (
	"context"

	"infograph-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SessionRepository() contract.SessionRepository
	SourceRepository() contract.SourceRepository
	MessageRepository() contract.MessageRepository
	InfographicRepository() contract.InfographicRepository
}
