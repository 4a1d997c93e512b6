package mapper

import (
	"encoding/json"

	"infograph-be/internal/entity"
	"infograph-be/internal/model"
)

type InfographicMapper struct{}

func NewInfographicMapper() *InfographicMapper {
	return &InfographicMapper{}
}

// InfographicToEntity decodes the layout blob. A row with an unreadable blob
// still maps, carrying only the column fields.
func (m *InfographicMapper) InfographicToEntity(i *model.Infographic) *entity.Infographic {
	if i == nil {
		return nil
	}

	var layout entity.LayoutData
	if i.LayoutData != "" {
		_ = json.Unmarshal([]byte(i.LayoutData), &layout)
	}
	if layout.ImagePath == "" {
		layout.ImagePath = i.ImagePath
	}

	return &entity.Infographic{
		Id:           i.Id,
		SessionId:    i.SessionId,
		TemplateType: i.TemplateType,
		ImagePath:    i.ImagePath,
		Layout:       layout,
		CreatedAt:    i.CreatedAt,
	}
}

func (m *InfographicMapper) InfographicToModel(i *entity.Infographic) (*model.Infographic, error) {
	if i == nil {
		return nil, nil
	}

	layout := i.Layout
	if layout.ImagePath == "" {
		layout.ImagePath = i.ImagePath
	}
	blob, err := json.Marshal(layout)
	if err != nil {
		return nil, err
	}

	return &model.Infographic{
		Id:           i.Id,
		SessionId:    i.SessionId,
		TemplateType: i.TemplateType,
		ImagePath:    i.ImagePath,
		LayoutData:   string(blob),
		CreatedAt:    i.CreatedAt,
	}, nil
}
