package entity

import (
	"time"

	"fitsocial/pkg/ranking"
)

type Comment struct {
	ID         string     `json:"id"`
	PostID     string     `json:"post_id"`
	UserID     string     `json:"user_id"`
	Username   string     `json:"username"`
	AvatarURL  string     `json:"avatar_url"`
	ParentID   *string    `json:"parent_id,omitempty"`
	Text       string     `json:"text"`
	LikesCount int        `json:"likes_count"`
	Pinned     bool       `json:"pinned"`
	PinnedAt   *time.Time `json:"pinned_at,omitempty"`
	IsLiked    bool       `json:"is_liked"`
	Replies    []*Comment `json:"replies,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

func CommentSignals(c *Comment) ranking.CommentSignals {
	return ranking.CommentSignals{
		Likes:     c.LikesCount,
		Replies:   len(c.Replies),
		CreatedAt: c.CreatedAt,
		Pinned:    c.Pinned,
	}
}
