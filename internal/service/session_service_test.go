package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"infograph-be/internal/dto"
	"infograph-be/internal/entity"
	"infograph-be/internal/model"
	"infograph-be/internal/pkg/apperror"
	"infograph-be/internal/pkg/logger"
	"infograph-be/internal/repository/schema"
	"infograph-be/internal/repository/specification"
	"infograph-be/internal/repository/unitofwork"
	"infograph-be/pkg/database"
	"infograph-be/pkg/render"
	"infograph-be/pkg/search"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	uowFactory unitofwork.RepositoryFactory
	outputDir  string
	logger     logger.ILogger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir := t.TempDir()
	db, err := database.NewGormDBFromDSN(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	require.NoError(t, schema.NewManager(db).EnsureAll())

	return &testEnv{
		db:         db,
		uowFactory: unitofwork.NewRepositoryFactory(db),
		outputDir:  filepath.Join(dir, "infographics"),
		logger:     logger.NewZapLogger(filepath.Join(dir, "test.log"), false),
	}
}

func (e *testEnv) newSessionService(t *testing.T, provider search.Provider) ISessionService {
	t.Helper()
	renderer := render.NewBasicRenderer(e.outputDir)
	infographics := NewInfographicService(e.uowFactory, renderer, e.logger)
	return NewSessionService(e.uowFactory, provider, infographics, 5, e.logger)
}

func (e *testEnv) seedUser(t *testing.T) *entity.User {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Id:        uuid.New(),
		Email:     "researcher@example.com",
		Name:      "Researcher",
		GoogleId:  uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	uow := e.uowFactory.NewUnitOfWork(context.Background())
	require.NoError(t, uow.UserRepository().Create(context.Background(), user))
	return user
}

func (e *testEnv) countRows(t *testing.T, value interface{}, sessionId uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(value).Where("session_id = ?", sessionId).Count(&n).Error)
	return n
}

type failingProvider struct{}

func (failingProvider) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	return nil, errors.New("upstream unreachable")
}

type failingRenderer struct{}

func (failingRenderer) Render(fileName string, layout render.BasicLayout) (string, error) {
	return "", errors.New("render backend down")
}

func TestStartResearchCompletesPipeline(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProvider())

	res, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "impact of microplastics"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusCompleted), res.Status)
	assert.Equal(t, user.Id, res.UserId)

	sources, err := svc.ListSources(context.Background(), user.Id, res.Id)
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "Alpha Title", sources[0].Title)
	assert.Equal(t, 1.0, sources[0].Confidence)
	assert.Equal(t, 0.9, sources[1].Confidence)

	infographics := NewInfographicService(env.uowFactory, render.NewBasicRenderer(env.outputDir), env.logger)
	info, err := infographics.GetBySession(context.Background(), user.Id, res.Id)
	require.NoError(t, err)
	assert.Equal(t, render.TemplateBasic, info.TemplateType)
	assert.Equal(t, 2, info.LayoutData.SourceCount)
	assert.Equal(t, []string{"Alpha Title", "Beta Title"}, info.LayoutData.Bullets)

	_, err = os.Stat(info.ImagePath)
	assert.NoError(t, err)
}

func TestStartResearchEmptyPrompt(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProvider())

	_, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "   "})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	var n int64
	require.NoError(t, env.db.Model(&model.ResearchSession{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestStartResearchSearchFailure(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, failingProvider{})

	_, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "anything"})
	assert.True(t, apperror.IsKind(err, apperror.KindSearchFailed))

	// The session row survives as a failed record with no sources.
	sessions, err := svc.ListSessions(context.Background(), user.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, string(entity.SessionStatusFailed), sessions[0].Status)
	assert.Zero(t, env.countRows(t, &model.Source{}, sessions[0].Id))
}

func TestStartResearchRenderFailure(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	infographics := NewInfographicService(env.uowFactory, failingRenderer{}, env.logger)
	svc := NewSessionService(env.uowFactory, search.NewFixtureProvider(), infographics, 5, env.logger)

	_, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "anything"})
	assert.True(t, apperror.IsKind(err, apperror.KindInfographicFailed))

	sessions, err := svc.ListSessions(context.Background(), user.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, string(entity.SessionStatusFailed), sessions[0].Status)
	// Sources stored before the render stage stay attached.
	assert.Equal(t, int64(2), env.countRows(t, &model.Source{}, sessions[0].Id))
}

func TestStartResearchZeroResults(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProviderWithHTML("<html><body></body></html>"))

	res, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "obscure topic"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.SessionStatusCompleted), res.Status)

	infographics := NewInfographicService(env.uowFactory, render.NewBasicRenderer(env.outputDir), env.logger)
	info, err := infographics.GetBySession(context.Background(), user.Id, res.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, info.LayoutData.SourceCount)
	assert.Equal(t, []string{"No sources available yet."}, info.LayoutData.Bullets)
}

func TestGenerateReplacesPreviousInfographic(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProvider())

	res, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "repeatable"})
	require.NoError(t, err)

	uow := env.uowFactory.NewUnitOfWork(context.Background())
	session, err := uow.SessionRepository().FindOne(context.Background(), specification.ByID{ID: res.Id})
	require.NoError(t, err)
	require.NotNil(t, session)

	infographics := NewInfographicService(env.uowFactory, render.NewBasicRenderer(env.outputDir), env.logger)
	_, err = infographics.Generate(context.Background(), session, nil, render.TemplateBasic)
	require.NoError(t, err)

	assert.Equal(t, int64(1), env.countRows(t, &model.Infographic{}, res.Id))
}

func TestGenerateRejectsUnknownTemplate(t *testing.T) {
	env := newTestEnv(t)
	infographics := NewInfographicService(env.uowFactory, render.NewBasicRenderer(env.outputDir), env.logger)

	session := &entity.ResearchSession{Id: uuid.New(), Prompt: "x"}
	_, err := infographics.Generate(context.Background(), session, nil, "fancy")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestDeleteSessionCascades(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProvider())

	res, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "to be deleted"})
	require.NoError(t, err)

	_, err = svc.CreateMessage(context.Background(), user.Id, res.Id, &dto.CreateMessageRequest{Role: "user", Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(context.Background(), user.Id, res.Id))

	_, err = svc.GetSession(context.Background(), user.Id, res.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	assert.Zero(t, env.countRows(t, &model.Source{}, res.Id))
	assert.Zero(t, env.countRows(t, &model.Message{}, res.Id))
	assert.Zero(t, env.countRows(t, &model.Infographic{}, res.Id))
}

func TestSessionOwnershipGuard(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t)
	intruder := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProvider())

	res, err := svc.StartResearch(context.Background(), owner.Id, &dto.CreateSessionRequest{Prompt: "private"})
	require.NoError(t, err)

	_, err = svc.GetSession(context.Background(), intruder.Id, res.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	err = svc.DeleteSession(context.Background(), intruder.Id, res.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))

	_, err = svc.ListMessages(context.Background(), intruder.Id, res.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindForbidden))
}

func TestListSessionsPaginationAndOrder(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProvider())

	prompts := []string{"first", "second", "third"}
	for _, p := range prompts {
		_, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: p})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	page, err := svc.ListSessions(context.Background(), user.Id, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "third", page[0].Prompt)
	assert.Equal(t, "second", page[1].Prompt)

	rest, err := svc.ListSessions(context.Background(), user.Id, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "first", rest[0].Prompt)
}

func TestCreateMessageInvalidRole(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProvider())

	res, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "chat"})
	require.NoError(t, err)

	_, err = svc.CreateMessage(context.Background(), user.Id, res.Id, &dto.CreateMessageRequest{Role: "bot", Content: "hi"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestMessagesOrderedOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProvider())

	res, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "conversation"})
	require.NoError(t, err)

	for _, content := range []string{"one", "two", "three"} {
		_, err := svc.CreateMessage(context.Background(), user.Id, res.Id, &dto.CreateMessageRequest{Role: "user", Content: content})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	messages, err := svc.ListMessages(context.Background(), user.Id, res.Id)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "three", messages[2].Content)
}

func TestGetImagePathMissingFile(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t)
	svc := env.newSessionService(t, search.NewFixtureProvider())

	res, err := svc.StartResearch(context.Background(), user.Id, &dto.CreateSessionRequest{Prompt: "artifact"})
	require.NoError(t, err)

	infographics := NewInfographicService(env.uowFactory, render.NewBasicRenderer(env.outputDir), env.logger)
	path, err := infographics.GetImagePath(context.Background(), user.Id, res.Id)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	_, err = infographics.GetImagePath(context.Background(), user.Id, res.Id)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
