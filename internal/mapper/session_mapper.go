package mapper

import (
	"infograph-be/internal/entity"
	"infograph-be/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

// Session Mappers

func (m *SessionMapper) SessionToEntity(s *model.ResearchSession) *entity.ResearchSession {
	if s == nil {
		return nil
	}
	return &entity.ResearchSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Prompt:    s.Prompt,
		Status:    entity.SessionStatus(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (m *SessionMapper) SessionToModel(s *entity.ResearchSession) *model.ResearchSession {
	if s == nil {
		return nil
	}
	return &model.ResearchSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Prompt:    s.Prompt,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Source Mappers

func (m *SessionMapper) SourceToEntity(s *model.Source) *entity.Source {
	if s == nil {
		return nil
	}
	return &entity.Source{
		Id:         s.Id,
		SessionId:  s.SessionId,
		Title:      s.Title,
		Url:        s.Url,
		Snippet:    s.Snippet,
		Confidence: s.Confidence,
	}
}

func (m *SessionMapper) SourceToModel(s *entity.Source) *model.Source {
	if s == nil {
		return nil
	}
	return &model.Source{
		Id:         s.Id,
		SessionId:  s.SessionId,
		Title:      s.Title,
		Url:        s.Url,
		Snippet:    s.Snippet,
		Confidence: s.Confidence,
	}
}

// Message Mappers

func (m *SessionMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      entity.MessageRole(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *SessionMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:        msg.Id,
		SessionId: msg.SessionId,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
