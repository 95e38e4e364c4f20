package entity

import (
	"time"

	"fitsocial/pkg/ranking"
)

type Media struct {
	URL       string `json:"url"`
	MediaType string `json:"media_type"`
	Position  int    `json:"position"`
}

// FeedPost is a post as it appears in a feed, with its author inlined.
type FeedPost struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	AvatarURL     string    `json:"avatar_url"`
	Title         *string   `json:"title,omitempty"`
	Text          string    `json:"text"`
	RoutineID     *string   `json:"routine_id,omitempty"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	IsLiked       bool      `json:"is_liked"`
	Hotness       float64   `json:"hotness,omitempty"`
	Media         []Media   `json:"media"`
	CreatedAt     time.Time `json:"created_at"`
}

func PostSignals(p *FeedPost) ranking.PostSignals {
	return ranking.PostSignals{
		Likes:     p.LikesCount,
		Comments:  p.CommentsCount,
		CreatedAt: p.CreatedAt,
	}
}
