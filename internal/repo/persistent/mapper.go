package persistent

import (
	"inkpress/internal/entity"
	"inkpress/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	return &entity.Post{
		ID:              m.ID,
		Title:           m.Title,
		Slug:            m.Slug,
		Summary:         m.Summary,
		Content:         m.Content,
		Image:           m.Image,
		Categories:      []string(m.Categories),
		Tags:            []string(m.Tags),
		Author:          m.Author,
		MetaDescription: m.MetaDescription,
		Status:          entity.PostStatus(m.Status),
		PublishedAt:     m.PublishedAt,
		ReadTime:        m.ReadTime,
		Views:           m.Views,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:              e.ID,
		Title:           e.Title,
		Slug:            e.Slug,
		Summary:         e.Summary,
		Content:         e.Content,
		Image:           e.Image,
		Categories:      e.Categories,
		Tags:            e.Tags,
		Author:          e.Author,
		MetaDescription: e.MetaDescription,
		Status:          string(e.Status),
		PublishedAt:     e.PublishedAt,
		ReadTime:        e.ReadTime,
		Views:           e.Views,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
