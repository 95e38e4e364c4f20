package entity

import "time"

// Notification is one entry in a user's inbox.
type Notification struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ActorID       string    `json:"actor_id"`
	ActorUsername string    `json:"actor_username"`
	Message       string    `json:"message"`
	PostID        string    `json:"post_id,omitempty"`
	CommentID     string    `json:"comment_id,omitempty"`
	RoutineID     string    `json:"routine_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type Inbox struct {
	Notifications []Notification `json:"notifications"`
	Total         int64          `json:"total"`
	Unread        int64          `json:"unread"`
}
