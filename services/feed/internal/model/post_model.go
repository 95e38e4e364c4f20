package model

import "time"

type PostModel struct {
	ID            string           `gorm:"type:uuid;primary_key"`
	UserID        string           `gorm:"type:uuid;not null;index"`
	Title         *string
	Text          string           `gorm:"type:text;not null"`
	RoutineID     *string          `gorm:"type:uuid"`
	LikesCount    int              `gorm:"default:0"`
	CommentsCount int              `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Media         []PostMediaModel `gorm:"foreignKey:PostID"`
}

func (PostModel) TableName() string {
	return "posts"
}

type PostMediaModel struct {
	ID        string `gorm:"type:uuid;primary_key"`
	PostID    string `gorm:"type:uuid;not null;index"`
	URL       string `gorm:"not null"`
	MediaType string `gorm:"type:varchar(10);not null"`
	Position  int    `gorm:"default:0"`
}

func (PostMediaModel) TableName() string {
	return "post_media"
}

type AuthorRow struct {
	ID        string
	Username  string
	AvatarURL string
}
