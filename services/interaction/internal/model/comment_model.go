package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentModel struct {
	ID         string     `gorm:"type:uuid;primary_key"`
	PostID     string     `gorm:"type:uuid;not null;index"`
	UserID     string     `gorm:"type:uuid;not null;index"`
	ParentID   *string    `gorm:"type:uuid;index"`
	Text       string     `gorm:"type:text;not null"`
	LikesCount int        `gorm:"default:0"`
	Pinned     bool       `gorm:"default:false"`
	PinnedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CommentModel) TableName() string {
	return "post_comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// CommentRow is a comment joined with its author.
type CommentRow struct {
	CommentModel
	Username  string
	AvatarURL string
}
