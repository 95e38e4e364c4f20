package persistent

import (
	"fitsocial/services/feed/internal/entity"
	"fitsocial/services/feed/internal/model"
)

func ToFeedPost(m *model.PostModel) *entity.FeedPost {
	if m == nil {
		return nil
	}

	media := make([]entity.Media, len(m.Media))
	for i, pm := range m.Media {
		media[i] = entity.Media{
			URL:       pm.URL,
			MediaType: pm.MediaType,
			Position:  pm.Position,
		}
	}

	return &entity.FeedPost{
		ID:            m.ID,
		UserID:        m.UserID,
		Title:         m.Title,
		Text:          m.Text,
		RoutineID:     m.RoutineID,
		LikesCount:    m.LikesCount,
		CommentsCount: m.CommentsCount,
		Media:         media,
		CreatedAt:     m.CreatedAt,
	}
}
