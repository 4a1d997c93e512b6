package service

import (
	"context"
	"strings"
	"time"

	"infograph-be/internal/dto"
	"infograph-be/internal/entity"
	"infograph-be/internal/pkg/apperror"
	"infograph-be/internal/pkg/logger"
	"infograph-be/internal/repository/specification"
	"infograph-be/internal/repository/unitofwork"
	"infograph-be/pkg/render"
	"infograph-be/pkg/search"

	"github.com/google/uuid"
)

type ISessionService interface {
	StartResearch(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error)
	ListSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error
	CreateMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
	ListMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.MessageResponse, error)
	ListSources(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.SourceResponse, error)
}

type sessionService struct {
	uowFactory   unitofwork.RepositoryFactory
	provider     search.Provider
	infographics IInfographicService
	maxResults   int
	logger       logger.ILogger
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	provider search.Provider,
	infographics IInfographicService,
	maxResults int,
	sysLogger logger.ILogger,
) ISessionService {
	return &sessionService{
		uowFactory:   uowFactory,
		provider:     provider,
		infographics: infographics,
		maxResults:   maxResults,
		logger:       sysLogger,
	}
}

// StartResearch runs the whole pipeline synchronously inside the request:
// pending -> searching -> generating -> completed, with any stage failure
// short-circuiting to failed. The stored status is the durable record of
// the outcome; rows committed by earlier stages are never rolled back.
func (s *sessionService) StartResearch(ctx context.Context, userId uuid.UUID, req *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, apperror.NewValidation("Prompt cannot be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	session := &entity.ResearchSession{
		Id:        uuid.New(),
		UserId:    userId,
		Prompt:    prompt,
		Status:    entity.SessionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.setStatus(ctx, uow, session, entity.SessionStatusSearching); err != nil {
		return nil, err
	}

	results, err := s.provider.Search(ctx, prompt, s.maxResults)
	if err != nil {
		s.markFailed(ctx, uow, session)
		return nil, apperror.NewSearchFailed("Search request failed", err)
	}

	for _, result := range results {
		source := &entity.Source{
			Id:         uuid.New(),
			SessionId:  session.Id,
			Title:      result.Title,
			Url:        result.Url,
			Snippet:    result.Snippet,
			Confidence: result.Confidence,
		}
		if err := uow.SourceRepository().Create(ctx, source); err != nil {
			// Rows already inserted stay attached to the failed session.
			s.markFailed(ctx, uow, session)
			return nil, apperror.NewSearchFailed("Failed to store search results", err)
		}
	}

	if err := s.setStatus(ctx, uow, session, entity.SessionStatusGenerating); err != nil {
		return nil, err
	}

	// Read-after-write: render from stored state, not the in-memory batch.
	storedSources, err := uow.SourceRepository().FindAll(ctx, specification.BySessionID{SessionID: session.Id})
	if err != nil {
		s.markFailed(ctx, uow, session)
		return nil, apperror.NewInfographicFailed("Failed to load stored sources", err)
	}
	if stored, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: session.Id}); err == nil && stored != nil {
		session = stored
	}

	if _, err := s.infographics.Generate(ctx, session, storedSources, render.TemplateBasic); err != nil {
		s.markFailed(ctx, uow, session)
		return nil, err
	}

	if err := s.setStatus(ctx, uow, session, entity.SessionStatusCompleted); err != nil {
		return nil, err
	}

	final, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: session.Id})
	if err != nil {
		return nil, err
	}
	if final == nil {
		final = session
	}

	s.logger.Info("session", "Research pipeline completed", map[string]interface{}{
		"session_id": final.Id.String(),
		"sources":    len(storedSources),
	})

	return sessionToResponse(final), nil
}

func (s *sessionService) GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := requireOwnedSession(ctx, uow, sessionId, userId)
	if err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

func (s *sessionService) ListSessions(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*dto.SessionResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		result[i] = sessionToResponse(session)
	}
	return result, nil
}

// DeleteSession removes the session and everything it owns. The deletes
// are sequential and best-effort; the first failure surfaces as-is.
func (s *sessionService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireOwnedSession(ctx, uow, sessionId, userId); err != nil {
		return err
	}

	if err := uow.MessageRepository().DeleteAllBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.SourceRepository().DeleteAllBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.InfographicRepository().DeleteAllBySessionId(ctx, sessionId); err != nil {
		return err
	}
	return uow.SessionRepository().Delete(ctx, sessionId)
}

func (s *sessionService) CreateMessage(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	role := entity.MessageRole(req.Role)
	if !role.Valid() {
		return nil, apperror.NewValidation("Unsupported message role")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireOwnedSession(ctx, uow, sessionId, userId); err != nil {
		return nil, err
	}

	message := &entity.Message{
		Id:        uuid.New(),
		SessionId: sessionId,
		Role:      role,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		return nil, err
	}
	return messageToResponse(message), nil
}

func (s *sessionService) ListMessages(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireOwnedSession(ctx, uow, sessionId, userId); err != nil {
		return nil, err
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.MessageResponse, len(messages))
	for i, message := range messages {
		result[i] = messageToResponse(message)
	}
	return result, nil
}

func (s *sessionService) ListSources(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) ([]*dto.SourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireOwnedSession(ctx, uow, sessionId, userId); err != nil {
		return nil, err
	}

	sources, err := uow.SourceRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}

	result := make([]*dto.SourceResponse, len(sources))
	for i, source := range sources {
		result[i] = &dto.SourceResponse{
			Id:         source.Id,
			SessionId:  source.SessionId,
			Title:      source.Title,
			Url:        source.Url,
			Snippet:    source.Snippet,
			Confidence: source.Confidence,
		}
	}
	return result, nil
}

func (s *sessionService) setStatus(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ResearchSession, status entity.SessionStatus) error {
	session.Status = status
	session.UpdatedAt = time.Now()
	return uow.SessionRepository().Update(ctx, session)
}

// markFailed is the only compensating action the pipeline takes; the write
// itself is best-effort so the original failure always wins.
func (s *sessionService) markFailed(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ResearchSession) {
	if err := s.setStatus(ctx, uow, session, entity.SessionStatusFailed); err != nil {
		s.logger.Error("session", "Failed to mark session failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
}

func sessionToResponse(session *entity.ResearchSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:        session.Id,
		UserId:    session.UserId,
		Prompt:    session.Prompt,
		Status:    string(session.Status),
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
	}
}

func messageToResponse(message *entity.Message) *dto.MessageResponse {
	return &dto.MessageResponse{
		Id:        message.Id,
		SessionId: message.SessionId,
		Role:      string(message.Role),
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}
