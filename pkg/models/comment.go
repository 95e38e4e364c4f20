package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment rows with a ParentID are replies. Replies never have replies of their own.
type Comment struct {
	ID         string     `gorm:"type:uuid;primary_key" json:"id"`
	PostID     string     `gorm:"type:uuid;not null;index" json:"post_id"`
	UserID     string     `gorm:"type:uuid;not null;index" json:"user_id"`
	ParentID   *string    `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Text       string     `gorm:"type:text;not null" json:"text"`
	LikesCount int        `gorm:"default:0" json:"likes_count"`
	Pinned     bool       `gorm:"default:false" json:"pinned"`
	PinnedAt   *time.Time `json:"pinned_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Comment) TableName() string {
	return "post_comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
