package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostLikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	PostID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_post_user"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_post_likes_post_user"`
	CreatedAt time.Time
}

func (PostLikeModel) TableName() string {
	return "post_likes"
}

func (l *PostLikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type CommentLikeModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	CommentID string    `gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_comment_user"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_comment_likes_comment_user"`
	CreatedAt time.Time
}

func (CommentLikeModel) TableName() string {
	return "comment_likes"
}

func (l *CommentLikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}

type LikerRow struct {
	UserID    string
	Username  string
	AvatarURL string
	CreatedAt time.Time
}
