package service

import (
	"context"

	"infograph-be/internal/entity"
	"infograph-be/internal/pkg/apperror"
	"infograph-be/internal/repository/specification"
	"infograph-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// requireOwnedSession resolves a session and verifies the caller owns it.
// Invoked before every session-scoped read or mutation; the decision is
// never cached across requests.
func requireOwnedSession(ctx context.Context, uow unitofwork.UnitOfWork, sessionId, userId uuid.UUID) (*entity.ResearchSession, error) {
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFound("Session not found")
	}
	if session.UserId != userId {
		return nil, apperror.NewForbidden("Not authorized")
	}
	return session, nil
}
