package implementation

import (
	"context"
	"errors"

	"infograph-be/internal/entity"
	"infograph-be/internal/mapper"
	"infograph-be/internal/model"
	"infograph-be/internal/repository/contract"
	"infograph-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InfographicRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InfographicMapper
}

func NewInfographicRepository(db *gorm.DB) contract.InfographicRepository {
	return &InfographicRepositoryImpl{
		db:     db,
		mapper: mapper.NewInfographicMapper(),
	}
}

func (r *InfographicRepositoryImpl) Create(ctx context.Context, infographic *entity.Infographic) error {
	m, err := r.mapper.InfographicToModel(infographic)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*infographic = *r.mapper.InfographicToEntity(m)
	return nil
}

func (r *InfographicRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Infographic, error) {
	var m model.Infographic
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.InfographicToEntity(&m), nil
}

func (r *InfographicRepositoryImpl) DeleteAllBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.Infographic{}).Error
}
