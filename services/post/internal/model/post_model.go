package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID            string           `gorm:"type:uuid;primary_key"`
	UserID        string           `gorm:"type:uuid;not null;index"`
	Title         *string
	Text          string           `gorm:"type:text;not null"`
	RoutineID     *string          `gorm:"type:uuid"`
	LikesCount    int              `gorm:"default:0"`
	CommentsCount int              `gorm:"default:0"`
	CreatedAt     time.Time        `gorm:"index"`
	UpdatedAt     time.Time
	Media         []PostMediaModel `gorm:"foreignKey:PostID"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PostMediaModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	PostID    string `gorm:"type:uuid;not null;index"`
	URL       string `gorm:"not null"`
	MediaType string `gorm:"type:varchar(10);not null"`
	Position  int    `gorm:"default:0"`
	CreatedAt time.Time
}

func (PostMediaModel) TableName() string {
	return "post_media"
}

func (pm *PostMediaModel) BeforeCreate(tx *gorm.DB) error {
	if pm.ID == "" {
		pm.ID = uuid.New().String()
	}
	return nil
}

type AuthorRow struct {
	ID        string
	Username  string
	AvatarURL string
}
