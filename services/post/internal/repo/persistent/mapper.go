package persistent

import (
	"fitsocial/services/post/internal/entity"
	"fitsocial/services/post/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Text:          m.Text,
		RoutineID:     m.RoutineID,
		LikesCount:    m.LikesCount,
		CommentsCount: m.CommentsCount,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Media:         []entity.PostMedia{},
	}

	for i := range m.Media {
		post.Media = append(post.Media, ToPostMediaEntity(&m.Media[i]))
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	post := &model.PostModel{
		ID:            e.ID,
		UserID:        e.UserID,
		Title:         e.Title,
		Text:          e.Text,
		RoutineID:     e.RoutineID,
		LikesCount:    e.LikesCount,
		CommentsCount: e.CommentsCount,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}

	if len(e.Media) > 0 {
		post.Media = make([]model.PostMediaModel, len(e.Media))
		for i := range e.Media {
			post.Media[i] = *ToPostMediaModel(&e.Media[i])
		}
	}

	return post
}

func ToPostMediaEntity(m *model.PostMediaModel) entity.PostMedia {
	if m == nil {
		return entity.PostMedia{}
	}

	return entity.PostMedia{
		ID:        m.ID,
		PostID:    m.PostID,
		URL:       m.URL,
		MediaType: entity.MediaType(m.MediaType),
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
	}
}

func ToPostMediaModel(e *entity.PostMedia) *model.PostMediaModel {
	if e == nil {
		return nil
	}

	return &model.PostMediaModel{
		ID:        e.ID,
		PostID:    e.PostID,
		URL:       e.URL,
		MediaType: string(e.MediaType),
		Position:  e.Position,
		CreatedAt: e.CreatedAt,
	}
}
