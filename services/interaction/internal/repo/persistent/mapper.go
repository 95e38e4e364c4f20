package persistent

import (
	"fitsocial/services/interaction/internal/entity"
	"fitsocial/services/interaction/internal/model"
)

func ToCommentEntity(m *model.CommentModel) *entity.Comment {
	if m == nil {
		return nil
	}

	return &entity.Comment{
		ID:         m.ID,
		PostID:     m.PostID,
		UserID:     m.UserID,
		ParentID:   m.ParentID,
		Text:       m.Text,
		LikesCount: m.LikesCount,
		Pinned:     m.Pinned,
		PinnedAt:   m.PinnedAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToCommentModel(e *entity.Comment) *model.CommentModel {
	if e == nil {
		return nil
	}

	return &model.CommentModel{
		ID:         e.ID,
		PostID:     e.PostID,
		UserID:     e.UserID,
		ParentID:   e.ParentID,
		Text:       e.Text,
		LikesCount: e.LikesCount,
		Pinned:     e.Pinned,
		PinnedAt:   e.PinnedAt,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func rowToComment(r *model.CommentRow) *entity.Comment {
	c := ToCommentEntity(&r.CommentModel)
	c.Username = r.Username
	c.AvatarURL = r.AvatarURL
	return c
}

func rowToLiker(r model.LikerRow) *entity.Liker {
	return &entity.Liker{
		UserID:    r.UserID,
		Username:  r.Username,
		AvatarURL: r.AvatarURL,
		LikedAt:   r.CreatedAt,
	}
}

func rowToUserSummary(r model.UserRow) *entity.UserSummary {
	return &entity.UserSummary{
		ID:             r.ID,
		Username:       r.Username,
		DisplayName:    r.DisplayName,
		AvatarURL:      r.AvatarURL,
		FollowersCount: r.FollowersCount,
	}
}
