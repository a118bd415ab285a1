package tag

import (
	"context"
	"errors"
	"strings"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type (
	TagService interface {
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
		GetTag(ctx context.Context, id string) (domain.TagResponse, error)
		CreateTag(ctx context.Context, req domain.CreateTagRequest) (domain.TagResponse, error)
	}

	tagService struct {
		tagRepository TagRepository
		validator     *validator.Validate
	}
)

func NewTagService(tagRepository TagRepository, validator *validator.Validate) TagService {
	return &tagService{
		tagRepository: tagRepository,
		validator:     validator,
	}
}

func (s *tagService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.tagRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TagResponse, 0, len(tags))
	for _, t := range tags {
		res = append(res, ToTagResponse(t))
	}
	return res, nil
}

func (s *tagService) GetTag(ctx context.Context, id string) (domain.TagResponse, error) {
	tagID, err := domain.ParseID(id, domain.ErrTagNotFound)
	if err != nil {
		return domain.TagResponse{}, err
	}

	t, err := s.tagRepository.GetTagByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}
	return ToTagResponse(t), nil
}

// CreateTag is only reachable from the admin CLI. Colors are stored upper
// case so "#e26c2d" and "#E26C2D" are the same tag color.
func (s *tagService) CreateTag(ctx context.Context, req domain.CreateTagRequest) (domain.TagResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return domain.TagResponse{}, err
	}

	t := &entities.Tag{
		Name:  req.Name,
		Color: strings.ToUpper(req.Color),
		Slug:  req.Slug,
	}
	if err := s.tagRepository.CreateTag(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.TagResponse{}, domain.ErrSlugTaken
		}
		return domain.TagResponse{}, err
	}
	return ToTagResponse(t), nil
}

func ToTagResponse(t *entities.Tag) domain.TagResponse {
	return domain.TagResponse{
		ID:    t.ID.String(),
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}
