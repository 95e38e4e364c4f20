package entity

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type Post struct {
	ID            string      `json:"id"`
	UserID        string      `json:"user_id"`
	Username      string      `json:"username"`
	AvatarURL     string      `json:"avatar_url"`
	Title         *string     `json:"title,omitempty"`
	Text          string      `json:"text"`
	RoutineID     *string     `json:"routine_id,omitempty"`
	LikesCount    int         `json:"likes_count"`
	CommentsCount int         `json:"comments_count"`
	IsLiked       bool        `json:"is_liked"`
	Media         []PostMedia `json:"media"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type PostMedia struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	URL       string    `json:"url"`
	MediaType MediaType `json:"media_type"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
