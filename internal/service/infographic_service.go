package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"infograph-be/internal/dto"
	"infograph-be/internal/entity"
	"infograph-be/internal/pkg/apperror"
	"infograph-be/internal/pkg/logger"
	"infograph-be/internal/repository/specification"
	"infograph-be/internal/repository/unitofwork"
	"infograph-be/pkg/render"

	"github.com/google/uuid"
)

const maxBullets = 3

// Renderer abstracts the PNG backend so generation can be exercised
// without touching the filesystem.
type Renderer interface {
	Render(fileName string, layout render.BasicLayout) (string, error)
}

type IInfographicService interface {
	Generate(ctx context.Context, session *entity.ResearchSession, sources []*entity.Source, templateType string) (*entity.Infographic, error)
	GetBySession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.InfographicResponse, error)
	GetImagePath(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (string, error)
}

type infographicService struct {
	uowFactory unitofwork.RepositoryFactory
	renderer   Renderer
	logger     logger.ILogger
}

func NewInfographicService(uowFactory unitofwork.RepositoryFactory, renderer Renderer, sysLogger logger.ILogger) IInfographicService {
	return &infographicService{
		uowFactory: uowFactory,
		renderer:   renderer,
		logger:     sysLogger,
	}
}

// Generate renders the artifact and replaces any previous infographic for
// the session. Zero sources is not an error; the layout carries a
// placeholder bullet and a zero count.
func (s *infographicService) Generate(ctx context.Context, session *entity.ResearchSession, sources []*entity.Source, templateType string) (*entity.Infographic, error) {
	if templateType != render.TemplateBasic {
		return nil, apperror.NewValidation("Unsupported template type")
	}

	layout := buildBasicLayout(session.Prompt, sources)

	fileName := fmt.Sprintf("%s_%s.png", session.Id, templateType)
	imagePath, err := s.renderer.Render(fileName, layout)
	if err != nil {
		return nil, apperror.NewInfographicFailed("Failed to render infographic", err)
	}

	infographic := &entity.Infographic{
		Id:           uuid.New(),
		SessionId:    session.Id,
		TemplateType: templateType,
		ImagePath:    imagePath,
		Layout: entity.LayoutData{
			Title:       layout.Title,
			Bullets:     layout.Bullets,
			SourceCount: layout.SourceCount,
			ImagePath:   imagePath,
		},
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.InfographicRepository().DeleteAllBySessionId(ctx, session.Id); err != nil {
		return nil, apperror.NewInfographicFailed("Failed to replace previous infographic", err)
	}
	if err := uow.InfographicRepository().Create(ctx, infographic); err != nil {
		return nil, apperror.NewInfographicFailed("Failed to store infographic", err)
	}

	s.logger.Info("infographic", "Infographic generated", map[string]interface{}{
		"session_id": session.Id.String(),
		"image_path": imagePath,
	})

	return infographic, nil
}

func (s *infographicService) GetBySession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.InfographicResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireOwnedSession(ctx, uow, sessionId, userId); err != nil {
		return nil, err
	}

	infographic, err := uow.InfographicRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}
	if infographic == nil {
		return nil, apperror.NewNotFound("Infographic not found")
	}

	return &dto.InfographicResponse{
		Id:           infographic.Id,
		SessionId:    infographic.SessionId,
		TemplateType: infographic.TemplateType,
		ImagePath:    infographic.ImagePath,
		LayoutData: dto.LayoutData{
			Title:       infographic.Layout.Title,
			Bullets:     infographic.Layout.Bullets,
			SourceCount: infographic.Layout.SourceCount,
			ImagePath:   infographic.Layout.ImagePath,
		},
		CreatedAt: infographic.CreatedAt,
	}, nil
}

// GetImagePath returns the on-disk artifact path after verifying the file
// still exists. A stored row with a missing file reads as not found.
func (s *infographicService) GetImagePath(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := requireOwnedSession(ctx, uow, sessionId, userId); err != nil {
		return "", err
	}

	infographic, err := uow.InfographicRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return "", err
	}
	if infographic == nil {
		return "", apperror.NewNotFound("Infographic not found")
	}

	if _, err := os.Stat(infographic.ImagePath); err != nil {
		return "", apperror.NewNotFound("Image not found")
	}
	return infographic.ImagePath, nil
}

func buildBasicLayout(prompt string, sources []*entity.Source) render.BasicLayout {
	bullets := make([]string, 0, maxBullets)
	for _, source := range sources {
		if len(bullets) == maxBullets {
			break
		}
		title := strings.TrimSpace(source.Title)
		if title == "" {
			continue
		}
		bullets = append(bullets, title)
	}
	if len(bullets) == 0 {
		bullets = append(bullets, "No sources available yet.")
	}

	return render.BasicLayout{
		Title:       prompt,
		Bullets:     bullets,
		SourceCount: len(sources),
	}
}
