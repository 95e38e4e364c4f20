package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type Post struct {
	ID            string      `gorm:"type:uuid;primary_key" json:"id"`
	UserID        string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title         *string     `json:"title,omitempty"`
	Text          string      `gorm:"type:text;not null" json:"text"`
	RoutineID     *string     `gorm:"type:uuid" json:"routine_id,omitempty"`
	LikesCount    int         `gorm:"default:0" json:"likes_count"`
	CommentsCount int         `gorm:"default:0" json:"comments_count"`
	Media         []PostMedia `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"media"`
	CreatedAt     time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PostMedia struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	URL       string    `gorm:"not null" json:"url"`
	MediaType MediaType `gorm:"type:varchar(10);not null" json:"media_type"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostMedia) TableName() string {
	return "post_media"
}

func (pm *PostMedia) BeforeCreate(tx *gorm.DB) error {
	if pm.ID == "" {
		pm.ID = uuid.New().String()
	}
	return nil
}
